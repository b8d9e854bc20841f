// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Store - create a record for payload in block, kept for period blocks
func (r *Reservoir) Store(trx storage.Transaction, payload []byte, block uint64, period uint64) (*transactionrecord.TransactionRecord, error) {
	err := chunk.Validate(payload, r.maxTransactionSize)
	if nil != err {
		return nil, err
	}

	ref, err := r.nextRef(trx, block)
	if nil != err {
		return nil, err
	}

	chunks := chunk.Split(payload, r.chunkSize)
	record := &transactionrecord.TransactionRecord{
		ChunkCount:  uint32(len(chunks)),
		Size:        uint32(len(payload)),
		ContentHash: chunk.Commit(chunks),
		Block:       ref.Block,
		Index:       ref.Index,
		Expiry:      block + period,
	}
	r.put(trx, record)

	r.log.Debugf("stored: %s  size: %d  chunks: %d  expiry: %d", ref, record.Size, record.ChunkCount, record.Expiry)
	return record, nil
}

// Renew - store an existing record again in block without its payload
//
// the original record keeps its own expiry
func (r *Reservoir) Renew(trx storage.Transaction, ref transactionrecord.RecordRef, block uint64, period uint64) (*transactionrecord.TransactionRecord, error) {
	old, found := r.get(trx.Get(r.pools.Records, ref.Key()))
	if !found || old.Expiry <= block {
		return nil, fault.RecordNotFound
	}

	newRef, err := r.nextRef(trx, block)
	if nil != err {
		return nil, err
	}

	record := &transactionrecord.TransactionRecord{
		ChunkCount:  old.ChunkCount,
		Size:        old.Size,
		ContentHash: old.ContentHash,
		Block:       newRef.Block,
		Index:       newRef.Index,
		Expiry:      block + period,
	}
	r.put(trx, record)

	r.log.Debugf("renewed: %s as: %s  expiry: %d", ref, newRef, record.Expiry)
	return record, nil
}

// Get - fetch a committed record
func (r *Reservoir) Get(ref transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, bool) {
	return r.get(r.pools.Records.Get(ref.Key()))
}

// Count - records stored in a block and not yet pruned
func (r *Reservoir) Count(block uint64) uint32 {
	n, _ := r.pools.BlockRecordCount.GetN(blockKey(block))
	return uint32(n)
}

// allocate the next position in block, enforcing the per block limit
func (r *Reservoir) nextRef(trx storage.Transaction, block uint64) (transactionrecord.RecordRef, error) {
	key := blockKey(block)
	count, _ := trx.GetN(r.pools.BlockRecordCount, key)
	if count >= uint64(r.maxBlockTransactions) {
		return transactionrecord.RecordRef{}, fault.TooManyTransactions
	}
	trx.PutN(r.pools.BlockRecordCount, key, count+1)
	return transactionrecord.RecordRef{
		Block: block,
		Index: uint32(count),
	}, nil
}

func (r *Reservoir) put(trx storage.Transaction, record *transactionrecord.TransactionRecord) {
	ref := record.Ref()
	trx.Put(r.pools.Records, ref.Key(), record.Pack())
	trx.Put(r.pools.RecordExpiry, expiryKey(record.Expiry, ref), []byte{})
}

func (r *Reservoir) get(packed []byte) (*transactionrecord.TransactionRecord, bool) {
	if nil == packed {
		return nil, false
	}
	unpacked, _, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		r.log.Criticalf("corrupt record: %x  error: %s", packed, err)
		return nil, false
	}
	record, ok := unpacked.(*transactionrecord.TransactionRecord)
	if !ok {
		r.log.Criticalf("not a transaction record: %x", packed)
	}
	return record, ok
}
