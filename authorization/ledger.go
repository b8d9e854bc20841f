// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorization - bounded, pre-granted storage quotas
//
// an entry allows a number of stores totalling a number of bytes
// until its expiry block; only a limited number of entries may expire
// in any one block so that expiry work per block is bounded
package authorization

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Entry - an authorization
type Entry = transactionrecord.AuthorizationEntry

// counter holding the last issued id
var lastIdKey = []byte("authorization")

// Handles - storage pools used by the ledger
type Handles struct {
	Entries     *storage.PoolHandle
	Expiry      *storage.PoolHandle
	ExpiryCount *storage.PoolHandle
	Counters    *storage.PoolHandle
}

// HandlesFrom - the ledger pools of a database
func HandlesFrom(pools storage.Pools) Handles {
	return Handles{
		Entries:     pools.Authorizations,
		Expiry:      pools.AuthorizationExpiry,
		ExpiryCount: pools.ExpiryAuthorizationCount,
		Counters:    pools.Counters,
	}
}

// Ledger - the authorization store
type Ledger struct {
	log         *logger.L
	pools       Handles
	maxExpiries uint32
	period      uint64
}

// New - create a ledger over the given pools
func New(pools Handles, parameters chain.Parameters) *Ledger {
	return &Ledger{
		log:         logger.New("authorization"),
		pools:       pools,
		maxExpiries: parameters.MaxBlockAuthorizationExpiries,
		period:      parameters.AuthorizationPeriod,
	}
}

// Authorize - grant a new entry expiring at the given block
//
// the expiry must be after current and no more than the authorization
// period ahead of it
func (l *Ledger) Authorize(trx storage.Transaction, current uint64, count uint32, bytes uint32, expiry uint64) (*Entry, error) {
	if 0 == count || 0 == bytes {
		return nil, fault.InvalidAuthorizationAmount
	}
	if expiry <= current || expiry-current > l.period {
		return nil, fault.InvalidExpiry
	}

	expiryCount, _ := trx.GetN(l.pools.ExpiryCount, uint64Key(expiry))
	if expiryCount >= uint64(l.maxExpiries) {
		return nil, fault.BlockAuthorizationCapacityReached
	}

	lastId, _ := trx.GetN(l.pools.Counters, lastIdKey)
	entry := &Entry{
		Id:             lastId + 1,
		RemainingCount: count,
		RemainingBytes: bytes,
		ExpiryBlock:    expiry,
	}

	trx.PutN(l.pools.Counters, lastIdKey, entry.Id)
	trx.PutN(l.pools.ExpiryCount, uint64Key(expiry), expiryCount+1)
	trx.Put(l.pools.Expiry, expiryKey(entry), []byte{})
	trx.Put(l.pools.Entries, uint64Key(entry.Id), entry.Pack())

	l.log.Infof("authorized: %d  count: %d  bytes: %d  expiry: %d", entry.Id, count, bytes, expiry)
	return entry, nil
}

// Consume - take count stores of bytes total from an entry
//
// the entry is removed once either remaining field reaches zero; the
// returned entry holds the remaining quota
func (l *Ledger) Consume(trx storage.Transaction, id uint64, count uint32, bytes uint32, current uint64) (*Entry, error) {
	entry, found := l.get(trx.Get(l.pools.Entries, uint64Key(id)))
	if !found || current >= entry.ExpiryBlock {
		return nil, fault.InsufficientAuthorization
	}
	if count > entry.RemainingCount || bytes > entry.RemainingBytes {
		return nil, fault.InsufficientAuthorization
	}

	entry.RemainingCount -= count
	entry.RemainingBytes -= bytes

	if 0 == entry.RemainingCount || 0 == entry.RemainingBytes {
		l.remove(trx, entry)
		l.log.Debugf("authorization: %d exhausted", id)
	} else {
		trx.Put(l.pools.Entries, uint64Key(id), entry.Pack())
	}
	return entry, nil
}

// Expire - remove every entry whose expiry block is at or before
// through, returning their ids
func (l *Ledger) Expire(trx storage.Transaction, through uint64) ([]uint64, error) {
	cursor := l.pools.Expiry.NewFetchCursor()
	if through < math.MaxUint64 {
		cursor.Before(uint64Key(through + 1))
	}

	keys := make([][]byte, 0, 16)
	err := cursor.Map(func(key []byte, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return nil, err
	}

	expired := make([]uint64, 0, len(keys))
	for _, key := range keys {
		if 16 != len(key) {
			l.log.Criticalf("corrupt expiry key: %x", key)
			return nil, fault.InvalidParameters
		}
		expiry := key[:8]
		id := binary.BigEndian.Uint64(key[8:])

		trx.Delete(l.pools.Expiry, key)
		trx.Delete(l.pools.Entries, key[8:])
		trx.Delete(l.pools.ExpiryCount, expiry)
		expired = append(expired, id)
	}

	if 0 != len(expired) {
		l.log.Infof("expired: %d authorizations through block: %d", len(expired), through)
	}
	return expired, nil
}

// Get - fetch a committed entry
func (l *Ledger) Get(id uint64) (*Entry, bool) {
	return l.get(l.pools.Entries.Get(uint64Key(id)))
}

// ExpiringAt - number of entries that expire at the block
func (l *Ledger) ExpiringAt(block uint64) uint32 {
	n, _ := l.pools.ExpiryCount.GetN(uint64Key(block))
	return uint32(n)
}

func (l *Ledger) remove(trx storage.Transaction, entry *Entry) {
	trx.Delete(l.pools.Entries, uint64Key(entry.Id))
	trx.Delete(l.pools.Expiry, expiryKey(entry))

	countKey := uint64Key(entry.ExpiryBlock)
	n, _ := trx.GetN(l.pools.ExpiryCount, countKey)
	if n <= 1 {
		trx.Delete(l.pools.ExpiryCount, countKey)
	} else {
		trx.PutN(l.pools.ExpiryCount, countKey, n-1)
	}
}

func (l *Ledger) get(packed []byte) (*Entry, bool) {
	if nil == packed {
		return nil, false
	}
	unpacked, _, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		l.log.Criticalf("corrupt entry: %x  error: %s", packed, err)
		return nil, false
	}
	entry, ok := unpacked.(*Entry)
	return entry, ok
}

func uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// expiry block ++ id
func expiryKey(entry *Entry) []byte {
	return append(uint64Key(entry.ExpiryBlock), uint64Key(entry.Id)...)
}
