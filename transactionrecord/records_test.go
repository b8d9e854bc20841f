// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

func TestRecordRefText(t *testing.T) {
	ref := transactionrecord.RecordRef{Block: 12, Index: 3}
	assert.Equal(t, "12:3", ref.String(), "text form")

	parsed, err := transactionrecord.ParseRecordRef("12:3")
	assert.Nil(t, err, "parse")
	assert.Equal(t, ref, parsed, "parsed reference")

	for _, s := range []string{"", "12", "12:", "x:1", "1:4294967296", "1:2:3"} {
		_, err := transactionrecord.ParseRecordRef(s)
		assert.Equal(t, fault.InvalidRecordReference, err, "accepted: %q", s)
	}
}

func TestRecordRefKeyOrder(t *testing.T) {
	a := transactionrecord.RecordRef{Block: 1, Index: 0x1000}.Key()
	b := transactionrecord.RecordRef{Block: 2, Index: 0}.Key()
	assert.True(t, string(a) < string(b), "keys must sort by block first")

	ref, err := transactionrecord.RecordRefFromKey(b)
	assert.Nil(t, err, "from key")
	assert.Equal(t, uint64(2), ref.Block, "block")

	_, err = transactionrecord.RecordRefFromKey(b[:11])
	assert.Equal(t, fault.InvalidRecordReference, err, "short key")
}

func TestPackTransactionRecord(t *testing.T) {
	r := &transactionrecord.TransactionRecord{
		ChunkCount:  2,
		Size:        300,
		ContentHash: merkle.NewDigest([]byte("payload")),
		Block:       1,
		Index:       0,
		Expiry:      11,
	}

	packed := r.Pack()
	assert.Equal(t, byte(transactionrecord.TransactionRecordTag), packed[0], "tag")

	unpacked, n, err := packed.Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, len(packed), n, "bytes consumed")
	assert.Equal(t, r, unpacked, "record")
	assert.Equal(t, transactionrecord.RecordRef{Block: 1, Index: 0}, unpacked.(*transactionrecord.TransactionRecord).Ref(), "ref")
}

func TestPackAuthorizationEntry(t *testing.T) {
	a := &transactionrecord.AuthorizationEntry{
		Id:             7,
		RemainingCount: 3,
		RemainingBytes: 4096,
		ExpiryBlock:    20,
	}

	unpacked, _, err := a.Pack().Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, a, unpacked, "entry")
}

func TestPackObligation(t *testing.T) {
	o := &transactionrecord.Obligation{
		Block:       2,
		Target:      transactionrecord.RecordRef{Block: 1, Index: 5},
		ChunkIndex:  1,
		ContentHash: merkle.NewDigest([]byte("x")),
		State:       transactionrecord.Satisfied,
	}

	unpacked, _, err := o.Pack().Unpack()
	assert.Nil(t, err, "unpack")
	assert.Equal(t, o, unpacked, "obligation")
}

func TestUnpackTruncated(t *testing.T) {
	r := &transactionrecord.TransactionRecord{
		ChunkCount:  1,
		Size:        1,
		ContentHash: merkle.NewDigest([]byte("x")),
		Block:       1000,
		Expiry:      1010,
	}
	packed := r.Pack()

	for i := 1; i < len(packed); i += 1 {
		_, _, err := packed[:i].Unpack()
		assert.Equal(t, fault.NotTransactionPack, err, "truncated at: %d", i)
	}
}

func TestUnpackUnknownTag(t *testing.T) {
	_, _, err := transactionrecord.Packed{byte(transactionrecord.InvalidTag), 0x00}.Unpack()
	assert.Equal(t, fault.UnknownRecordTag, err, "invalid tag")

	_, _, err = transactionrecord.Packed{}.Unpack()
	assert.Equal(t, fault.NotTransactionPack, err, "empty")
}

func TestObligationStateJSON(t *testing.T) {
	buffer, err := json.Marshal(transactionrecord.AwaitingProof)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, "\"awaiting-proof\"", string(buffer), "state text")

	var s transactionrecord.ObligationState
	assert.Nil(t, json.Unmarshal([]byte("\"unresolved\""), &s), "unmarshal")
	assert.Equal(t, transactionrecord.Unresolved, s, "state")
	assert.NotNil(t, json.Unmarshal([]byte("\"other\""), &s), "unknown state")
}
