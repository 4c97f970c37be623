// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"encoding/binary"
	"math/big"

	"github.com/rewardnet/stakevault/builtin/reverts"
	"github.com/rewardnet/stakevault/cry"
	"github.com/rewardnet/stakevault/rnt"
)

// PermitDigest computes the digest an owner signs to approve spender for
// value until deadline at the given nonce. The digest commits to the token
// address, so signatures cannot replay across deployments.
func (t *Token) PermitDigest(owner, spender rnt.Address, value *big.Int, nonce, deadline uint64) rnt.Bytes32 {
	var nb, db [8]byte
	binary.BigEndian.PutUint64(nb[:], nonce)
	binary.BigEndian.PutUint64(db[:], deadline)
	domain := rnt.Keccak256([]byte(Name), t.addr.Bytes())
	return rnt.Keccak256(
		domain.Bytes(),
		owner.Bytes(),
		spender.Bytes(),
		rnt.BytesToBytes32(value.Bytes()).Bytes(),
		nb[:],
		db[:],
	)
}

// Permit approves spender for value with the owner's signature instead of a
// direct call, consuming the owner's current nonce.
func (t *Token) Permit(owner, spender rnt.Address, value *big.Int, deadline uint64, sig []byte) error {
	if now := t.env.Now(); now > deadline {
		return &reverts.PermitExpired{Deadline: deadline, Now: now}
	}
	if owner.IsZero() || spender.IsZero() {
		return &reverts.InvalidAddress{}
	}
	if err := checkAmount(value); err != nil {
		return err
	}
	nonce, err := t.Nonces(owner)
	if err != nil {
		return err
	}
	digest := t.PermitDigest(owner, spender, value, nonce, deadline)
	signer, err := cry.Signer(digest, sig)
	if err != nil || signer != owner {
		return &reverts.InvalidSignature{}
	}
	if err := t.nonce(owner).Add(big.NewInt(1)); err != nil {
		return err
	}
	return t.allowance(owner, spender).Set(value)
}
