// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

type proveReply struct {
	Block      uint64                      `json:"block,string"`
	Target     transactionrecord.RecordRef `json:"target"`
	ChunkIndex uint32                      `json:"chunkIndex"`
	PathLength int                         `json:"pathLength"`
	Accepted   bool                        `json:"accepted"`
}

func runObligation(c *cli.Context) error {
	m := getMetadata(c)

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Obligation()
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runProve(c *cli.Context) error {
	m := getMetadata(c)

	payload, err := readFile(c.String("file"))
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}

	reply, err := client.Obligation()
	if nil != err {
		return err
	}
	obligation := reply.Obligation
	if nil == obligation || transactionrecord.AwaitingProof != obligation.State {
		return ErrNoObligation
	}

	p, err := buildProof(payload, info.Parameters.ChunkSize, obligation.ContentHash, obligation.ChunkIndex)
	if nil != err {
		return err
	}

	err = client.Check(p)
	if nil != err {
		return err
	}

	return printJson(m.w, proveReply{
		Block:      obligation.Block,
		Target:     obligation.Target,
		ChunkIndex: p.ChunkIndex,
		PathLength: p.PathLength(),
		Accepted:   true,
	})
}

// split the payload and prove one chunk, only if it is the challenged content
func buildProof(payload []byte, chunkSize uint32, contentHash merkle.Digest, index uint32) (*proof.ChunkProof, error) {
	if 0 == chunkSize {
		return nil, fault.InvalidChunkSize
	}
	chunks := chunk.Split(payload, chunkSize)
	if chunk.Commit(chunks) != contentHash {
		return nil, ErrContentMismatch
	}
	return proof.Prove(chunks, index)
}
