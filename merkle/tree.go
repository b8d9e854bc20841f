// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/txstored/fault"
)

// hash prefixes keep leaves and interior nodes in separate domains
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// LeafDigest - hash of a single chunk as a tree leaf
func LeafDigest(data []byte) Digest {
	buffer := make([]byte, 0, len(data)+1)
	buffer = append(buffer, leafPrefix)
	return NewDigest(append(buffer, data...))
}

// NodeDigest - hash of an interior node from its two children
func NodeDigest(left Digest, right Digest) Digest {
	buffer := make([]byte, 0, 2*DigestLength+1)
	buffer = append(buffer, nodePrefix)
	buffer = append(buffer, left[:]...)
	return NewDigest(append(buffer, right[:]...))
}

// Tree - a complete binary hash tree held in a single array
//
// structure is:
//   1. N * leaf digests
//   2. level 1..m digests
//   3. root digest (last element)
//
// an odd node at the end of a level is paired with itself
type Tree struct {
	nodes   []Digest
	offsets []int // start of each level in nodes
	widths  []int // number of nodes in each level
}

// NewTree - build the tree over a set of leaf digests
//
// returns nil if there are no leaves
func NewTree(leaves []Digest) *Tree {
	leafCount := len(leaves)
	if 0 == leafCount {
		return nil
	}

	totalLength := 0
	levels := 1
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
		levels += 1
	}
	totalLength += 1 // root

	t := &Tree{
		nodes:   make([]Digest, totalLength),
		offsets: make([]int, 0, levels),
		widths:  make([]int, 0, levels),
	}
	copy(t.nodes, leaves)
	t.offsets = append(t.offsets, 0)
	t.widths = append(t.widths, leafCount)

	start := 0
	n := leafCount
	for width := leafCount; width > 1; width = (width + 1) / 2 {
		levelStart := n
		for i := 0; i < width; i += 2 {
			j := i + 1
			if j == width {
				j = i // compensate for odd number
			}
			t.nodes[n] = NodeDigest(t.nodes[start+i], t.nodes[start+j])
			n += 1
		}
		t.offsets = append(t.offsets, levelStart)
		t.widths = append(t.widths, n-levelStart)
		start = levelStart
	}
	return t
}

// Root - the root digest
func (t *Tree) Root() Digest {
	if nil == t {
		return Digest{}
	}
	return t.nodes[len(t.nodes)-1]
}

// LeafCount - number of leaves in the tree
func (t *Tree) LeafCount() int {
	if nil == t {
		return 0
	}
	return t.widths[0]
}

// Depth - number of sibling digests in a path
func (t *Tree) Depth() int {
	if nil == t {
		return 0
	}
	return len(t.offsets) - 1
}

// Path - the sibling digests from the leaf at index up to the root
func (t *Tree) Path(index int) ([]Digest, error) {
	if index < 0 || index >= t.LeafCount() {
		return nil, fault.InvalidChunkIndex
	}

	path := make([]Digest, 0, t.Depth())
	for level := 0; level < t.Depth(); level += 1 {
		sibling := index ^ 1
		if sibling >= t.widths[level] {
			sibling = index
		}
		path = append(path, t.nodes[t.offsets[level]+sibling])
		index >>= 1
	}
	return path, nil
}

// RootFromPath - fold a leaf digest with its path
//
// bit k of index selects whether the running digest is the left (0)
// or right (1) child at level k; the index must be fully consumed by
// the path
//
// an odd last leaf is its own sibling so its path also folds to the
// root from index+1; callers bound the index by the leaf count
func RootFromPath(leaf Digest, index uint64, path []Digest) (Digest, bool) {
	h := leaf
	for _, sibling := range path {
		if 0 == index&1 {
			h = NodeDigest(h, sibling)
		} else {
			h = NodeDigest(sibling, h)
		}
		index >>= 1
	}
	if 0 != index {
		return Digest{}, false
	}
	return h, true
}
