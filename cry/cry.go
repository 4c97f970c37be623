// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cry provides the signing primitives of the engine: secp256k1
// signatures over 32-byte digests, in [R || S || V] form with V of 0 or 1.
package cry

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/rewardnet/stakevault/rnt"
)

// SignatureLength is the byte length of a [R || S || V] signature.
const SignatureLength = 65

// Sign signs the digest with the private key.
func Sign(digest rnt.Bytes32, priv *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(digest.Bytes(), priv)
}

// Signer recovers the signing address from digest and signature.
func Signer(digest rnt.Bytes32, sig []byte) (rnt.Address, error) {
	if len(sig) != SignatureLength {
		return rnt.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return rnt.Address{}, err
	}
	return DeriveAddress(pub), nil
}

// DeriveAddress computes the account address of the given public key.
func DeriveAddress(pub *ecdsa.PublicKey) rnt.Address {
	return rnt.Address(crypto.PubkeyToAddress(*pub))
}

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}
