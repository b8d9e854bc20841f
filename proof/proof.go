// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - chunk inclusion proofs against a payload commitment
package proof

import (
	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
)

// a uint32 index can never need more levels than this
const maximumPathLength = 32

// ChunkProof - a chunk and the sibling digests from its leaf to the root
type ChunkProof struct {
	ChunkIndex uint32          `json:"chunkIndex"`
	ChunkData  []byte          `json:"chunkData"`
	ProofPath  []merkle.Digest `json:"proofPath"`
}

// Prove - build the proof for one chunk of an already split payload
func Prove(chunks [][]byte, index uint32) (*ChunkProof, error) {
	if uint64(index) >= uint64(len(chunks)) {
		return nil, fault.InvalidChunkIndex
	}

	path, err := chunk.Tree(chunks).Path(int(index))
	if nil != err {
		return nil, err
	}

	data := make([]byte, len(chunks[index]))
	copy(data, chunks[index])

	return &ChunkProof{
		ChunkIndex: index,
		ChunkData:  data,
		ProofPath:  path,
	}, nil
}

// Build - split a payload and build the proof for one of its chunks
func Build(payload []byte, chunkSize uint32, index uint32) (*ChunkProof, error) {
	if 0 == chunkSize {
		return nil, fault.InvalidChunkSize
	}
	return Prove(chunk.Split(payload, chunkSize), index)
}

// Verify - recompute the root from a proof and compare to expectedRoot
//
// chunkCount bounds the index: the duplicated odd leaf would otherwise
// let the last chunk's proof verify one position past the end
//
// malformed proofs are rejected rather than reported as errors
func Verify(p *ChunkProof, expectedRoot merkle.Digest, chunkCount uint32) bool {
	if nil == p || 0 == len(p.ChunkData) || len(p.ProofPath) > maximumPathLength {
		return false
	}
	if p.ChunkIndex >= chunkCount {
		return false
	}

	root, ok := merkle.RootFromPath(merkle.LeafDigest(p.ChunkData), uint64(p.ChunkIndex), p.ProofPath)
	if !ok {
		return false
	}
	return root == expectedRoot
}

// PathLength - number of digests carried, nil safe
func (p *ChunkProof) PathLength() int {
	if nil == p {
		return 0
	}
	return len(p.ProofPath)
}
