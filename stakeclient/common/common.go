// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package common collects the sentinels and envelope types shared by the
// HTTP and websocket halves of the staking client.
package common

import "fmt"

var (
	ErrNotFound        = fmt.Errorf("not found")
	ErrNot200Status    = fmt.Errorf("not 200 status code")
	ErrUnexpectedMsg   = fmt.Errorf("unexpected message format")
	ErrCannotUnmarshal = fmt.Errorf("unable to unmarshal")
)

// EventWrapper is used to return errors from the websocket alongside the data.
type EventWrapper[T any] struct {
	Data  T
	Error error
}
