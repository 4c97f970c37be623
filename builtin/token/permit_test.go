// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/cry"
)

func TestPermit(t *testing.T) {
	tok := newTestToken(t, 1000)

	key, err := cry.GenerateKey()
	require.NoError(t, err)
	holder := cry.DeriveAddress(&key.PublicKey)

	value := big.NewInt(123)
	deadline := uint64(2000)

	digest := tok.PermitDigest(holder, bob, value, 0, deadline)
	sig, err := cry.Sign(digest, key)
	require.NoError(t, err)

	require.NoError(t, tok.Permit(holder, bob, value, deadline, sig))

	al, err := tok.Allowance(holder, bob)
	require.NoError(t, err)
	assert.Equal(t, value, al)

	nonce, err := tok.Nonces(holder)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	// replay with the consumed nonce fails
	err = tok.Permit(holder, bob, value, deadline, sig)
	assert.IsType(t, &reverts.InvalidSignature{}, err)
}

func TestPermitExpired(t *testing.T) {
	tok := newTestToken(t, 3000)

	key, err := cry.GenerateKey()
	require.NoError(t, err)
	holder := cry.DeriveAddress(&key.PublicKey)

	digest := tok.PermitDigest(holder, bob, big.NewInt(1), 0, 2000)
	sig, err := cry.Sign(digest, key)
	require.NoError(t, err)

	err = tok.Permit(holder, bob, big.NewInt(1), 2000, sig)
	var pe *reverts.PermitExpired
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, uint64(2000), pe.Deadline)
	assert.Equal(t, uint64(3000), pe.Now)
}

func TestPermitWrongSigner(t *testing.T) {
	tok := newTestToken(t, 1000)

	key, err := cry.GenerateKey()
	require.NoError(t, err)
	holder := cry.DeriveAddress(&key.PublicKey)

	// signed over different parameters
	digest := tok.PermitDigest(holder, bob, big.NewInt(999), 0, 2000)
	sig, err := cry.Sign(digest, key)
	require.NoError(t, err)

	err = tok.Permit(holder, bob, big.NewInt(1), 2000, sig)
	assert.IsType(t, &reverts.InvalidSignature{}, err)

	al, err := tok.Allowance(holder, bob)
	require.NoError(t, err)
	assert.Equal(t, 0, al.Sign())
}
