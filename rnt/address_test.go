// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rnt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Nil(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	// without 0x prefix
	addr, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Nil(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("0x7567d83b")
	assert.Error(t, err)

	_, err = ParseAddress("zz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte("stake")).IsZero())
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("vault"))

	data, err := json.Marshal(addr)
	assert.Nil(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytesToAddress(t *testing.T) {
	// cropped from the left
	long := BytesToAddress([]byte("0123456789012345678901234567890"))
	assert.Equal(t, byte('0'), long[AddressLength-1])

	// extended from the left
	short := BytesToAddress([]byte{0x1})
	assert.Equal(t, byte(0x1), short[AddressLength-1])
	assert.Equal(t, byte(0), short[0])
}
