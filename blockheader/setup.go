// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockheader - the persisted head of the local chain
package blockheader

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/genesis"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/storage"
)

// Version - current block header version
const Version = 1

const (
	digestOffset    = 0
	versionOffset   = digestOffset + merkle.DigestLength
	timestampOffset = versionOffset + 2
	packedLength    = timestampOffset + 8
)

// Head - the most recently finalised block
type Head struct {
	sync.RWMutex // to allow locking

	log *logger.L
	db  *storage.Database

	genesis merkle.Digest

	height            uint64        // this is the current block Height
	previousBlock     merkle.Digest // and its digest
	previousVersion   uint16        // plus its version
	previousTimestamp uint64        // plus its timestamp

	cache digestCache
}

// New - load the head from the database, or start at genesis
func New(db *storage.Database, chainName string) (*Head, error) {
	genesisDigest, err := genesis.Digest(chainName)
	if nil != err {
		return nil, err
	}

	log := logger.New("blockheader")
	h := &Head{
		log:     log,
		db:      db,
		genesis: genesisDigest,
	}
	h.setGenesis()

	last, found := db.Pool.BlockHeader.LastElement()
	if found {
		height, digest, version, timestamp, err := unpack(last.Key, last.Value)
		if nil != err {
			return nil, err
		}
		h.height = height
		h.previousBlock = digest
		h.previousVersion = version
		h.previousTimestamp = timestamp
	}

	log.Infof("block height: %d", h.height)
	log.Infof("previous block: %v", h.previousBlock)
	log.Infof("previous version: %d", h.previousVersion)

	return h, nil
}

// internal: must hold lock
func (h *Head) setGenesis() {
	h.height = genesis.BlockNumber
	h.previousBlock = h.genesis
	h.previousVersion = Version
	h.previousTimestamp = 0
}

// Set - persist a newly finalised block and make it the head
func (h *Head) Set(height uint64, digest merkle.Digest, version uint16, timestamp uint64) error {
	h.Lock()
	defer h.Unlock()

	if height != h.height+1 {
		return fault.BlockOutOfSequence
	}

	trx, err := h.db.Begin()
	if nil != err {
		return err
	}
	trx.Put(h.db.Pool.BlockHeader, heightKey(height), pack(digest, version, timestamp))
	err = trx.Commit()
	if nil != err {
		return err
	}

	h.height = height
	h.previousBlock = digest
	h.previousVersion = version
	h.previousTimestamp = timestamp
	h.cache.add(height, digest)

	return nil
}

// Get - return all header data
func (h *Head) Get() (uint64, merkle.Digest, uint16, uint64) {
	h.RLock()
	defer h.RUnlock()

	return h.height, h.previousBlock, h.previousVersion, h.previousTimestamp
}

// GetNew - return block data for initialising a new block
// returns: previous block digest and the number for the new block
func (h *Head) GetNew() (merkle.Digest, uint64) {
	h.RLock()
	defer h.RUnlock()
	return h.previousBlock, h.height + 1
}

// Height - return current height
func (h *Head) Height() uint64 {
	h.RLock()
	defer h.RUnlock()

	return h.height
}

// Genesis - digest of the chain's genesis block
func (h *Head) Genesis() merkle.Digest {
	return h.genesis
}

func heightKey(height uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	return key
}

func pack(digest merkle.Digest, version uint16, timestamp uint64) []byte {
	buffer := make([]byte, packedLength)
	copy(buffer[digestOffset:], digest[:])
	binary.BigEndian.PutUint16(buffer[versionOffset:], version)
	binary.BigEndian.PutUint64(buffer[timestampOffset:], timestamp)
	return buffer
}

func unpack(key []byte, value []byte) (uint64, merkle.Digest, uint16, uint64, error) {
	if 8 != len(key) || packedLength != len(value) {
		return 0, merkle.Digest{}, 0, 0, fault.NotTransactionPack
	}
	var digest merkle.Digest
	copy(digest[:], value[digestOffset:versionOffset])
	return binary.BigEndian.Uint64(key),
		digest,
		binary.BigEndian.Uint16(value[versionOffset:]),
		binary.BigEndian.Uint64(value[timestampOffset:]),
		nil
}
