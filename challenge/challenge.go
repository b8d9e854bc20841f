// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package challenge - derive the chunk a block must prove from the
// block's randomness
package challenge

import (
	"encoding/binary"

	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// domain separation for each derivation
const (
	recordTag = "txstored/challenge/record/v1"
	chunkTag  = "txstored/challenge/chunk/v1"
	seedTag   = "txstored/challenge/seed/v1"
)

// Candidate - a live record that may be challenged
type Candidate struct {
	Ref         transactionrecord.RecordRef
	ChunkCount  uint32
	ContentHash merkle.Digest
}

// Target - the chosen record and chunk
type Target struct {
	Ref         transactionrecord.RecordRef
	ChunkIndex  uint32
	ContentHash merkle.Digest
}

// Select - choose one chunk of one candidate
//
// the result depends only on the randomness and the ordered
// candidates; there is no target if there are no candidates
func Select(randomness merkle.Digest, candidates []Candidate) (Target, bool) {
	k, ok := SelectRecord(randomness, uint64(len(candidates)))
	if !ok {
		return Target{}, false
	}
	c := candidates[k]
	return Target{
		Ref:         c.Ref,
		ChunkIndex:  SelectChunk(randomness, c),
		ContentHash: c.ContentHash,
	}, true
}

// SelectRecord - position of the chosen record among count candidates
func SelectRecord(randomness merkle.Digest, count uint64) (uint64, bool) {
	if 0 == count {
		return 0, false
	}
	r := merkle.NewTaggedDigest(recordTag, randomness[:])
	return binary.BigEndian.Uint64(r[:8]) % count, true
}

// SelectChunk - the chunk to prove of the chosen record
func SelectChunk(randomness merkle.Digest, c Candidate) uint32 {
	if c.ChunkCount <= 1 {
		return 0
	}
	h := merkle.NewTaggedDigest(chunkTag, randomness[:], c.Ref.Key(), c.ContentHash[:])
	return uint32(binary.BigEndian.Uint64(h[:8]) % uint64(c.ChunkCount))
}

// Seed - randomness for a block derived from its parent's digest
func Seed(parent merkle.Digest, height uint64) merkle.Digest {
	var h [8]byte
	binary.BigEndian.PutUint64(h[:], height)
	return merkle.NewTaggedDigest(seedTag, parent[:], h[:])
}
