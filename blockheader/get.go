// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockheader

import (
	"encoding/binary"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/genesis"
	"github.com/bitmark-inc/txstored/merkle"
)

const (
	cacheSize = 10
	blockTag  = "txstored/block/v1"
)

type cachedBlockDigest struct {
	blockNumber uint64
	digest      merkle.Digest
}

type digestCache struct {
	entries [cacheSize]cachedBlockDigest
	index   int
}

// BlockDigest - digest of a block from its parent, height and
// timestamp
func BlockDigest(parent merkle.Digest, height uint64, timestamp uint64) merkle.Digest {
	buffer := make([]byte, 16)
	binary.BigEndian.PutUint64(buffer[:8], height)
	binary.BigEndian.PutUint64(buffer[8:], timestamp)
	return merkle.NewTaggedDigest(blockTag, parent[:], buffer)
}

// DigestForBlock - return the digest for a specific block number
func (h *Head) DigestForBlock(number uint64) (merkle.Digest, error) {
	h.Lock()
	defer h.Unlock()

	// valid block number
	if number <= genesis.BlockNumber {
		return h.genesis, nil
	}
	if number > h.height {
		return merkle.Digest{}, fault.BlockNotFound
	}

	if digest, ok := h.cache.get(number); ok {
		return digest, nil
	}

	packed := h.db.Pool.BlockHeader.Get(heightKey(number))
	if nil == packed {
		return merkle.Digest{}, fault.BlockNotFound
	}
	_, digest, _, _, err := unpack(heightKey(number), packed)
	if nil != err {
		return merkle.Digest{}, err
	}

	h.cache.add(number, digest)
	return digest, nil
}

func (c *digestCache) get(blockNumber uint64) (merkle.Digest, bool) {
	for _, e := range c.entries {
		if e.blockNumber == blockNumber && !e.digest.IsZero() {
			return e.digest, true
		}
	}
	return merkle.Digest{}, false
}

func (c *digestCache) add(blockNumber uint64, digest merkle.Digest) {
	c.entries[c.index] = cachedBlockDigest{
		blockNumber: blockNumber,
		digest:      digest,
	}
	if cacheSize-1 == c.index {
		c.index = 0
	} else {
		c.index += 1
	}
}
