// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Handles - storage pools used by the reservoir
type Handles struct {
	Records          *storage.PoolHandle
	RecordExpiry     *storage.PoolHandle
	BlockRecordCount *storage.PoolHandle
}

// HandlesFrom - the reservoir pools of a database
func HandlesFrom(pools storage.Pools) Handles {
	return Handles{
		Records:          pools.Records,
		RecordExpiry:     pools.RecordExpiry,
		BlockRecordCount: pools.BlockRecordCount,
	}
}

// Reservoir - the transaction record store
type Reservoir struct {
	log                  *logger.L
	pools                Handles
	maxBlockTransactions uint32
	maxTransactionSize   uint32
	chunkSize            uint32
}

// New - create a record store over the given pools
func New(pools Handles, parameters chain.Parameters) *Reservoir {
	return &Reservoir{
		log:                  logger.New("reservoir"),
		pools:                pools,
		maxBlockTransactions: parameters.MaxBlockTransactions,
		maxTransactionSize:   parameters.MaxTransactionSize,
		chunkSize:            parameters.ChunkSize,
	}
}

// block number as an 8 byte big endian key
func blockKey(block uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, block)
	return key
}

// expiry block ++ ref
func expiryKey(expiry uint64, ref transactionrecord.RecordRef) []byte {
	return append(blockKey(expiry), ref.Key()...)
}

// split an expiry index key
func fromExpiryKey(key []byte) (uint64, transactionrecord.RecordRef, error) {
	if 8+transactionrecord.RecordRefLength != len(key) {
		return 0, transactionrecord.RecordRef{}, fault.InvalidRecordReference
	}
	ref, err := transactionrecord.RecordRefFromKey(key[8:])
	return binary.BigEndian.Uint64(key[:8]), ref, err
}
