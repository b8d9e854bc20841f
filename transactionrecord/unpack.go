// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"math"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   switch r := result.(type) {
//   case *transactionrecord.TransactionRecord:
func (record Packed) Unpack() (r Record, n int, e error) {

	defer func() {
		if x := recover(); nil != x {
			r = nil
			n = 0
			e = fault.NotTransactionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotTransactionPack
	}

	var values [6]uint64
	var digest merkle.Digest

unpack_switch:
	switch TagType(recordType) {

	case TransactionRecordTag:
		k := 0
		if n, k = readUint64s(record, n, values[:2]); 0 == k {
			break unpack_switch
		}
		if n, k = readDigest(record, n, &digest); 0 == k {
			break unpack_switch
		}
		if n, k = readUint64s(record, n, values[2:5]); 0 == k {
			break unpack_switch
		}
		if values[0] > math.MaxUint32 || values[1] > math.MaxUint32 || values[3] > math.MaxUint32 {
			break unpack_switch
		}
		tx := &TransactionRecord{
			ChunkCount:  uint32(values[0]),
			Size:        uint32(values[1]),
			ContentHash: digest,
			Block:       values[2],
			Index:       uint32(values[3]),
			Expiry:      values[4],
		}
		return tx, n, nil

	case AuthorizationEntryTag:
		k := 0
		if n, k = readUint64s(record, n, values[:4]); 0 == k {
			break unpack_switch
		}
		if values[1] > math.MaxUint32 || values[2] > math.MaxUint32 {
			break unpack_switch
		}
		a := &AuthorizationEntry{
			Id:             values[0],
			RemainingCount: uint32(values[1]),
			RemainingBytes: uint32(values[2]),
			ExpiryBlock:    values[3],
		}
		return a, n, nil

	case ObligationTag:
		k := 0
		if n, k = readUint64s(record, n, values[:4]); 0 == k {
			break unpack_switch
		}
		if n, k = readDigest(record, n, &digest); 0 == k {
			break unpack_switch
		}
		if n, k = readUint64s(record, n, values[4:5]); 0 == k {
			break unpack_switch
		}
		if values[2] > math.MaxUint32 || values[3] > math.MaxUint32 {
			break unpack_switch
		}
		state := ObligationState(values[4])
		if state < AwaitingProof || state > Unresolved {
			break unpack_switch
		}
		o := &Obligation{
			Block: values[0],
			Target: RecordRef{
				Block: values[1],
				Index: uint32(values[2]),
			},
			ChunkIndex:  uint32(values[3]),
			ContentHash: digest,
			State:       state,
		}
		return o, n, nil

	default: // also NullTag
		return nil, 0, fault.UnknownRecordTag
	}
	return nil, 0, fault.NotTransactionPack
}

// read consecutive Varint64 values starting at offset n
// returns the new offset and the count of bytes read, zero on failure
func readUint64s(record Packed, n int, values []uint64) (int, int) {
	start := n
	for i := range values {
		v, count := util.FromVarint64(record[n:])
		if 0 == count {
			return start, 0
		}
		values[i] = v
		n += count
	}
	return n, n - start
}

// read a length prefixed digest starting at offset n
func readDigest(record Packed, n int, digest *merkle.Digest) (int, int) {
	start := n
	length, count := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == count {
		return start, 0
	}
	n += count
	if nil != merkle.DigestFromBytes(digest, record[n:n+length]) {
		return start, 0
	}
	n += length
	return n, n - start
}
