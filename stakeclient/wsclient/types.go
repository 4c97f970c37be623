// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wsclient

import "github.com/rewardnet/stakevault/stakeclient/common"

// Subscription ties an event channel to its teardown.
type Subscription[T any] struct {
	// EventChan is the channel through which the subscription events are delivered.
	EventChan <-chan common.EventWrapper[T]

	// Unsubscribe closes the connection behind the subscription. The event
	// channel is closed shortly after.
	Unsubscribe func() error
}
