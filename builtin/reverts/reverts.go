// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the typed failure conditions of built-in contract
// operations. A revert aborts the whole operation and rolls back every state
// change it made; infrastructure errors (storage access and the like) are not
// reverts and propagate separately.
package reverts

import (
	"errors"
)

// Revert is implemented by every typed revert in this package.
type Revert interface {
	error
	revert()
}

// ErrRevert is a plain revert carrying only a message.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) revert() {}

// IsRevertErr reports whether err is a typed revert, as opposed to an
// infrastructure error.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve Revert
	return errors.As(e, &ve)
}
