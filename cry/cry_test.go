// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardnet/stakevault/rnt"
)

func TestSignAndRecover(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	digest := rnt.Blake2b([]byte("message"))

	sig, err := Sign(digest, priv)
	require.NoError(t, err)
	assert.Len(t, sig, SignatureLength)

	signer, err := Signer(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, DeriveAddress(&priv.PublicKey), signer)
}

func TestSignerRejectsBadInput(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	digest := rnt.Blake2b([]byte("message"))
	sig, err := Sign(digest, priv)
	require.NoError(t, err)

	_, err = Signer(digest, sig[:64])
	assert.Error(t, err)

	// altered digest recovers a different signer
	other, err := Signer(rnt.Blake2b([]byte("other")), sig)
	require.NoError(t, err)
	assert.NotEqual(t, DeriveAddress(&priv.PublicKey), other)
}
