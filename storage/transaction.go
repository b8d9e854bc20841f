// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/txstored/fault"
)

// Transaction - a batch of pool changes applied atomically by Commit
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transaction struct {
	inUse    sync.Mutex
	active   bool
	database *Database
	batch    *leveldb.Batch
	cache    Cache
}

func newTransaction(database *Database) *transaction {
	return &transaction{
		database: database,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

func (t *transaction) begin() {
	t.inUse.Lock()
	t.active = true
	t.batch.Reset()
	t.cache.Clear()
}

func (t *transaction) end() {
	t.batch.Reset()
	t.cache.Clear()
	t.active = false
	t.inUse.Unlock()
}

func (t *transaction) mustBeActive() {
	if !t.active {
		panic(fault.TransactionNotInProgress)
	}
}

// Put - store a key/value bytes pair
func (t *transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	t.mustBeActive()
	k := pool.prefixKey(key)
	v := make([]byte, len(value))
	copy(v, value)
	t.batch.Put(k, v)
	t.cache.Set(dbPut, string(k), v)
}

// PutN - store a big endian uint64 value
func (t *transaction) PutN(pool *PoolHandle, key []byte, value uint64) {
	t.Put(pool, key, encodeN(value))
}

// Delete - remove a key
func (t *transaction) Delete(pool *PoolHandle, key []byte) {
	t.mustBeActive()
	k := pool.prefixKey(key)
	t.batch.Delete(k)
	t.cache.Set(dbDelete, string(k), nil)
}

// Get - read a value, pending writes first
func (t *transaction) Get(pool *PoolHandle, key []byte) []byte {
	t.mustBeActive()
	value, op, found := t.cache.Get(string(pool.prefixKey(key)))
	if found {
		if dbDelete == op {
			return nil
		}
		return value
	}
	return pool.Get(key)
}

// GetN - read a big endian uint64 value, pending writes first
func (t *transaction) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(pool, key))
}

// Has - check if a key exists, pending writes first
func (t *transaction) Has(pool *PoolHandle, key []byte) bool {
	t.mustBeActive()
	_, op, found := t.cache.Get(string(pool.prefixKey(key)))
	if found {
		return dbPut == op
	}
	return pool.Has(key)
}

// Commit - write the whole batch and release the transaction
func (t *transaction) Commit() error {
	t.mustBeActive()
	defer t.end()

	t.database.RLock()
	defer t.database.RUnlock()
	if nil == t.database.db {
		return fault.DatabaseIsNotSet
	}
	return t.database.db.Write(t.batch, nil)
}

// Abort - discard every pending change and release the transaction
func (t *transaction) Abort() {
	if !t.active {
		return
	}
	t.end()
}
