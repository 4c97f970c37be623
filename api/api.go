// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rewardnet/stakevault/api/adminops"
	"github.com/rewardnet/stakevault/api/events"
	"github.com/rewardnet/stakevault/api/locks"
	"github.com/rewardnet/stakevault/api/stakers"
	"github.com/rewardnet/stakevault/api/status"
	"github.com/rewardnet/stakevault/api/subscriptions"
	"github.com/rewardnet/stakevault/api/supply"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/log"
	"github.com/rewardnet/stakevault/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
	DevMode         bool
}

// New return api router
func New(
	engine *node.Engine,
	eventDB *eventdb.EventDB,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	stakers.New(engine, opts.DevMode).
		Mount(router, "/stakers")
	locks.New(engine, opts.DevMode).
		Mount(router, "/locks")
	supply.New(engine).
		Mount(router, "/supply")
	status.New(engine).
		Mount(router, "/node")
	events.New(eventDB, opts.LogsLimit).
		Mount(router, "/events")
	if opts.DevMode {
		adminops.New(engine).
			Mount(router, "/admin-ops")
	}
	subs := subscriptions.New(engine, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(validateGenesisID(engine.GenesisID().String()))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}

// validateGenesisID stamps responses with the engine's genesis id and rejects
// requests pinned to another network.
func validateGenesisID(genesisID string) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-genesis-id", genesisID)
			if id := r.Header.Get("x-genesis-id"); id != "" && !strings.EqualFold(id, genesisID) {
				http.Error(w, "genesis id mismatch", http.StatusForbidden)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
