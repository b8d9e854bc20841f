// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/util"
)

// Pack - pack a transaction record
func (r *TransactionRecord) Pack() Packed {
	record := util.ToVarint64(uint64(TransactionRecordTag))
	record = appendUint64(record, uint64(r.ChunkCount))
	record = appendUint64(record, uint64(r.Size))
	record = appendDigest(record, r.ContentHash)
	record = appendUint64(record, r.Block)
	record = appendUint64(record, uint64(r.Index))
	return appendUint64(record, r.Expiry)
}

// Pack - pack an authorization entry
func (a *AuthorizationEntry) Pack() Packed {
	record := util.ToVarint64(uint64(AuthorizationEntryTag))
	record = appendUint64(record, a.Id)
	record = appendUint64(record, uint64(a.RemainingCount))
	record = appendUint64(record, uint64(a.RemainingBytes))
	return appendUint64(record, a.ExpiryBlock)
}

// Pack - pack a proof obligation
func (o *Obligation) Pack() Packed {
	record := util.ToVarint64(uint64(ObligationTag))
	record = appendUint64(record, o.Block)
	record = appendUint64(record, o.Target.Block)
	record = appendUint64(record, uint64(o.Target.Index))
	record = appendUint64(record, uint64(o.ChunkIndex))
	record = appendDigest(record, o.ContentHash)
	return appendUint64(record, uint64(o.State))
}

// append a digest as length + bytes
func appendDigest(buffer Packed, digest merkle.Digest) Packed {
	buffer = append(buffer, util.ToVarint64(merkle.DigestLength)...)
	return append(buffer, digest[:]...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}
