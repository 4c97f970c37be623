// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rewardnet/stakevault/admin"
	"github.com/rewardnet/stakevault/api"
	"github.com/rewardnet/stakevault/builtin/staking"
	"github.com/rewardnet/stakevault/eventdb"
	"github.com/rewardnet/stakevault/genesis"
	"github.com/rewardnet/stakevault/kv"
	"github.com/rewardnet/stakevault/log"
	"github.com/rewardnet/stakevault/metrics"
	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "StakeVault",
		Usage:     "Node of the RNT staking network",
		Copyright: "2026 The StakeVault developers",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			devFlag,
			persistFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)
	gene := selectGenesis(ctx)

	// enable metrics as soon as possible
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := metrics.StartServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			fatal(fmt.Sprintf("start metrics server: %v", err))
		}
		metricsURL = url
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := admin.StartServer(ctx.String(adminAddrFlag.Name), logLevel)
		if err != nil {
			fatal(fmt.Sprintf("start admin server: %v", err))
		}
		adminURL = url
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
	}

	devMode := ctx.Bool(devFlag.Name)

	var mainDB kv.Store
	var eventDB *eventdb.EventDB
	instanceDir := "Memory"

	if !devMode || ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		eventDB = openEventDB(ctx, instanceDir)
	} else {
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()
	defer func() { log.Info("closing event database..."); eventDB.Close() }()

	engine, err := node.New(gene, state.NewStater(mainDB), eventDB, node.Options{})
	if err != nil {
		fatal(fmt.Sprintf("initialize staking engine: %v", err))
	}

	apiHandler, apiCloser := api.New(engine, eventDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
		DevMode:         devMode,
	})
	defer func() { log.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, engine, instanceDir, apiURL, metricsURL, adminURL)
	if devMode {
		printDevAccounts()
	}

	return engine.Run(handleExitSignal())
}

func strategyName(strategy uint64) string {
	if strategy == staking.StrategyPool {
		return "pool"
	}
	return "rate"
}

func printStartupMessage(
	gene *genesis.Genesis,
	engine *node.Engine,
	dataDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	status, err := engine.Status()
	if err != nil {
		fatal(fmt.Sprintf("read engine status: %v", err))
	}
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	if adminURL == "" {
		adminURL = "Disabled"
	}

	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Strategy     [ %v ]
    Lock period  [ %v ]
    Total staked [ %v ]
    Engine time  [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		common.MakeName("StakeVault", fullVersion()),
		gene.ID(), gene.Name(),
		strategyName(status.Strategy),
		time.Duration(status.LockPeriod)*time.Second,
		status.TotalStaked,
		time.Unix(int64(status.Now), 0),
		dataDir,
		apiURL,
		metricsURL,
		adminURL)
}

func printDevAccounts() {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			rnt.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
		)
	}
	info += tableEnd + "\r\n"

	fmt.Print(info)
}
