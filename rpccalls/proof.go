// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	chunkproof "github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/rpc/proof"
)

// Obligation - the open block and its challenge
func (client *Client) Obligation() (*proof.ObligationReply, error) {
	var reply proof.ObligationReply
	err := client.call("Proof.Obligation", &proof.ObligationArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Check - submit a chunk proof
func (client *Client) Check(p *chunkproof.ChunkProof) error {
	arguments := proof.CheckArguments{
		Proof:          p,
		Authentication: client.sign("Proof.Check", p.ChunkData),
	}
	var reply proof.CheckReply
	return client.call("Proof.Check", &arguments, &reply)
}
