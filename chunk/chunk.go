// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chunk - split transaction payloads into fixed size pieces
// and compute their commitment
package chunk

import (
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
)

// Count - number of chunks for a payload of size bytes
func Count(size uint32, chunkSize uint32) uint32 {
	if 0 == chunkSize {
		return 0
	}
	return uint32((uint64(size) + uint64(chunkSize) - 1) / uint64(chunkSize))
}

// Split - cut payload into chunkSize pieces, the last may be shorter
//
// no padding is applied; the returned slices share the payload's
// backing array
func Split(payload []byte, chunkSize uint32) [][]byte {
	if 0 == chunkSize || 0 == len(payload) {
		return nil
	}

	size := int(chunkSize)
	chunks := make([][]byte, 0, Count(uint32(len(payload)), chunkSize))
	for start := 0; start < len(payload); start += size {
		end := start + size
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end:end])
	}
	return chunks
}

// Hashes - leaf digest of every chunk
func Hashes(chunks [][]byte) []merkle.Digest {
	leaves := make([]merkle.Digest, len(chunks))
	for i, c := range chunks {
		leaves[i] = merkle.LeafDigest(c)
	}
	return leaves
}

// Tree - the commitment tree over a set of chunks
func Tree(chunks [][]byte) *merkle.Tree {
	return merkle.NewTree(Hashes(chunks))
}

// Commit - root of the commitment tree over a set of chunks
func Commit(chunks [][]byte) merkle.Digest {
	return Tree(chunks).Root()
}

// Validate - check payload length against the allowed range
func Validate(payload []byte, maximumSize uint32) error {
	if 0 == len(payload) {
		return fault.EmptyTransaction
	}
	if uint64(len(payload)) > uint64(maximumSize) {
		return fault.TransactionTooLarge
	}
	return nil
}
