// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"encoding/binary"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// internal marker to stop a cursor early
const errStop = fault.GenericError("stop")

// LiveCount - number of records stored in blocks before the given block
func (r *Reservoir) LiveCount(before uint64) (uint64, error) {
	total := uint64(0)
	err := r.pools.BlockRecordCount.NewFetchCursor().Before(blockKey(before)).Map(func(key []byte, value []byte) error {
		total += binary.BigEndian.Uint64(value)
		return nil
	})
	return total, err
}

// Nth - the record at position k, in storage order, of the records
// stored in blocks before the given block
func (r *Reservoir) Nth(before uint64, k uint64) (*transactionrecord.TransactionRecord, error) {
	block := uint64(0)
	found := false
	err := r.pools.BlockRecordCount.NewFetchCursor().Before(blockKey(before)).Map(func(key []byte, value []byte) error {
		n := binary.BigEndian.Uint64(value)
		if k < n {
			block = binary.BigEndian.Uint64(key)
			found = true
			return errStop
		}
		k -= n
		return nil
	})
	if nil != err && errStop != err {
		return nil, err
	}
	if !found {
		return nil, fault.RecordNotFound
	}

	var record *transactionrecord.TransactionRecord
	cursor := r.pools.Records.NewFetchCursor().Seek(blockKey(block)).Before(blockKey(block + 1))
	err = cursor.Map(func(key []byte, value []byte) error {
		if 0 != k {
			k -= 1
			return nil
		}
		var ok bool
		record, ok = r.get(value)
		if !ok {
			return fault.NotTransactionPack
		}
		return errStop
	})
	if nil != err && errStop != err {
		return nil, err
	}
	if nil == record {
		r.log.Criticalf("block: %d  record count exceeds stored records", block)
		return nil, fault.RecordNotFound
	}
	return record, nil
}

// Live - every record stored in blocks before the given block, in
// storage order
func (r *Reservoir) Live(before uint64) ([]*transactionrecord.TransactionRecord, error) {
	records := make([]*transactionrecord.TransactionRecord, 0, 64)
	err := r.pools.Records.NewFetchCursor().Before(blockKey(before)).Map(func(key []byte, value []byte) error {
		record, ok := r.get(value)
		if !ok {
			return fault.NotTransactionPack
		}
		records = append(records, record)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}
