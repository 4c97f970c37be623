// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/rewardnet/stakevault/node"
	"github.com/rewardnet/stakevault/xenv"
)

// eventDispatch fans committed events out to connection listeners. The feed
// intake channel is buffered so a slow dispatch never stalls the engine.
type eventDispatch struct {
	engine    *node.Engine
	listeners map[chan *xenv.Event]struct{}
	mu        sync.RWMutex
}

func newEventDispatch(engine *node.Engine) *eventDispatch {
	return &eventDispatch{
		engine:    engine,
		listeners: make(map[chan *xenv.Event]struct{}),
	}
}

func (d *eventDispatch) Subscribe(ch chan *xenv.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[ch] = struct{}{}
}

func (d *eventDispatch) Unsubscribe(ch chan *xenv.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.listeners, ch)
}

func (d *eventDispatch) DispatchLoop(done <-chan struct{}) {
	evCh := make(chan *xenv.Event, eventQueueSize)
	sub := d.engine.SubscribeEvents(evCh)
	defer sub.Unsubscribe()

	for {
		select {
		case ev := <-evCh:
			d.mu.RLock()
			func() {
				for lsn := range d.listeners {
					select {
					case lsn <- ev:
					case <-done:
						return
					default: // broadcast in a non-blocking manner, so there's no guarantee that all subscriber receives it
					}
				}
			}()
			d.mu.RUnlock()
		case <-done:
			return
		}
	}
}
