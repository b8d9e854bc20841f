// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the persistent records of the storage
// chain and their packed binary form
package transactionrecord

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
)

// TagType - type code for packed records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	TransactionRecordTag  = TagType(iota)
	AuthorizationEntryTag = TagType(iota)
	ObligationTag         = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic record interface
type Record interface {
	Pack() Packed
}

// RecordRefLength - bytes in the binary form of a RecordRef
const RecordRefLength = 12

// RecordRef - identity of a stored transaction: the block it was
// stored in and its position within that block
type RecordRef struct {
	Block uint64 `json:"block,string"`
	Index uint32 `json:"index"`
}

// String - "block:index"
func (ref RecordRef) String() string {
	return fmt.Sprintf("%d:%d", ref.Block, ref.Index)
}

// ParseRecordRef - convert "block:index" text to a RecordRef
func ParseRecordRef(s string) (RecordRef, error) {
	parts := strings.Split(s, ":")
	if 2 != len(parts) {
		return RecordRef{}, fault.InvalidRecordReference
	}
	block, err := strconv.ParseUint(parts[0], 10, 64)
	if nil != err {
		return RecordRef{}, fault.InvalidRecordReference
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if nil != err {
		return RecordRef{}, fault.InvalidRecordReference
	}
	return RecordRef{Block: block, Index: uint32(index)}, nil
}

// Key - big endian block followed by big endian index, so that keys
// sort in storage order
func (ref RecordRef) Key() []byte {
	key := make([]byte, RecordRefLength)
	binary.BigEndian.PutUint64(key[:8], ref.Block)
	binary.BigEndian.PutUint32(key[8:], ref.Index)
	return key
}

// RecordRefFromKey - inverse of Key
func RecordRefFromKey(key []byte) (RecordRef, error) {
	if RecordRefLength != len(key) {
		return RecordRef{}, fault.InvalidRecordReference
	}
	return RecordRef{
		Block: binary.BigEndian.Uint64(key[:8]),
		Index: binary.BigEndian.Uint32(key[8:]),
	}, nil
}

// TransactionRecord - metadata retained for a stored payload
type TransactionRecord struct {
	ChunkCount  uint32        `json:"chunkCount"`
	Size        uint32        `json:"size"`
	ContentHash merkle.Digest `json:"contentHash"`
	Block       uint64        `json:"block,string"`
	Index       uint32        `json:"index"`
	Expiry      uint64        `json:"expiry,string"`
}

// Ref - identity of the record
func (r *TransactionRecord) Ref() RecordRef {
	return RecordRef{Block: r.Block, Index: r.Index}
}

// AuthorizationEntry - a pre-granted storage quota
type AuthorizationEntry struct {
	Id             uint64 `json:"id,string"`
	RemainingCount uint32 `json:"remainingCount"`
	RemainingBytes uint32 `json:"remainingBytes"`
	ExpiryBlock    uint64 `json:"expiryBlock,string"`
}

// ObligationState - progress of the block's proof obligation
type ObligationState uint64

// possible obligation states
const (
	AwaitingProof ObligationState = iota + 1
	Satisfied
	Unresolved
)

// String - state name
func (s ObligationState) String() string {
	switch s {
	case AwaitingProof:
		return "awaiting-proof"
	case Satisfied:
		return "satisfied"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// MarshalText - state as its name
func (s ObligationState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - state from its name
func (s *ObligationState) UnmarshalText(text []byte) error {
	for _, state := range []ObligationState{AwaitingProof, Satisfied, Unresolved} {
		if string(text) == state.String() {
			*s = state
			return nil
		}
	}
	return fault.InvalidParameters
}

// Obligation - the chunk that must be proven during a block
type Obligation struct {
	Block       uint64          `json:"block,string"`
	Target      RecordRef       `json:"target"`
	ChunkIndex  uint32          `json:"chunkIndex"`
	ContentHash merkle.Digest   `json:"contentHash"`
	State       ObligationState `json:"state"`
}
