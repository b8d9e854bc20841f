// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package challenge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/txstored/challenge"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

func makeCandidates(n int, chunks uint32) []challenge.Candidate {
	candidates := make([]challenge.Candidate, n)
	for i := 0; i < n; i += 1 {
		candidates[i] = challenge.Candidate{
			Ref:         transactionrecord.RecordRef{Block: 1, Index: uint32(i)},
			ChunkCount:  chunks,
			ContentHash: merkle.NewDigest([]byte{byte(i)}),
		}
	}
	return candidates
}

func TestSelectEmpty(t *testing.T) {
	_, ok := challenge.Select(merkle.NewDigest([]byte("r")), nil)
	assert.False(t, ok, "target without candidates")
}

func TestSelectSingleChunk(t *testing.T) {
	candidates := makeCandidates(1, 1)
	target, ok := challenge.Select(merkle.NewDigest([]byte("r")), candidates)
	assert.True(t, ok, "target")
	assert.Equal(t, candidates[0].Ref, target.Ref, "only record")
	assert.Equal(t, uint32(0), target.ChunkIndex, "only chunk")
	assert.Equal(t, candidates[0].ContentHash, target.ContentHash, "content hash")
}

func TestSelectReachesEveryRecordAndChunk(t *testing.T) {
	candidates := makeCandidates(3, 4)
	records := map[uint32]bool{}
	chunks := map[uint32]bool{}

	for i := 0; i < 200; i += 1 {
		target, ok := challenge.Select(merkle.NewDigest([]byte{byte(i), byte(i >> 8)}), candidates)
		assert.True(t, ok, "target")
		records[target.Ref.Index] = true
		chunks[target.ChunkIndex] = true
	}
	assert.Equal(t, 3, len(records), "records reached")
	assert.Equal(t, 4, len(chunks), "chunks reached")
}

func TestSelectDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "candidates")
		chunks := uint32(rapid.IntRange(1, 40).Draw(t, "chunks"))
		seed := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "seed")

		candidates := makeCandidates(n, chunks)
		randomness := merkle.NewDigest(seed)

		first, ok1 := challenge.Select(randomness, candidates)
		second, ok2 := challenge.Select(randomness, makeCandidates(n, chunks))
		if !ok1 || !ok2 || first != second {
			t.Fatalf("selection differs: %v  %v", first, second)
		}
		if first.ChunkIndex >= chunks {
			t.Fatalf("chunk index: %d  chunk count: %d", first.ChunkIndex, chunks)
		}
		if int(first.Ref.Index) >= n {
			t.Fatalf("record index: %d  candidates: %d", first.Ref.Index, n)
		}
	})
}

func TestSeed(t *testing.T) {
	parent := merkle.NewDigest([]byte("parent"))
	assert.Equal(t, challenge.Seed(parent, 5), challenge.Seed(parent, 5), "seed must be stable")
	assert.NotEqual(t, challenge.Seed(parent, 5), challenge.Seed(parent, 6), "height must change seed")
	assert.NotEqual(t, challenge.Seed(parent, 5), challenge.Seed(merkle.NewDigest(nil), 5), "parent must change seed")
}

func TestSelectMatchesParts(t *testing.T) {
	candidates := makeCandidates(7, 9)
	randomness := merkle.NewDigest([]byte("parts"))

	target, ok := challenge.Select(randomness, candidates)
	assert.True(t, ok, "target")

	k, ok := challenge.SelectRecord(randomness, uint64(len(candidates)))
	assert.True(t, ok, "record")
	assert.Equal(t, candidates[k].Ref, target.Ref, "record position")
	assert.Equal(t, challenge.SelectChunk(randomness, candidates[k]), target.ChunkIndex, "chunk")

	_, ok = challenge.SelectRecord(randomness, 0)
	assert.False(t, ok, "no records")
}
