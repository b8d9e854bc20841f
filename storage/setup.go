// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Records                  *PoolHandle `prefix:"R"`
	RecordExpiry             *PoolHandle `prefix:"X"`
	BlockRecordCount         *PoolHandle `prefix:"C"`
	Authorizations           *PoolHandle `prefix:"A"`
	AuthorizationExpiry      *PoolHandle `prefix:"E"`
	ExpiryAuthorizationCount *PoolHandle `prefix:"F"`
	Obligation               *PoolHandle `prefix:"O"`
	BlockHeader              *PoolHandle `prefix:"H"`
	Counters                 *PoolHandle `prefix:"N"`
	TestData                 *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - an open leveldb and its pools
type Database struct {
	sync.RWMutex
	log  *logger.L
	db   *leveldb.DB
	trx  *transaction
	Pool Pools
}

// Open - open up the database connection
//
// the database is created if it does not exist, unless readOnly
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - open an empty database held only in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	log := logger.New("storage")

	switch {
	case 0 == version && readOnly:
		return nil, fault.IncompatibleDatabaseVersion
	case 0 == version:
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	case version != currentDBVersion:
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		return nil, fault.IncompatibleDatabaseVersion
	}

	d := &Database{
		log: log,
		db:  db,
	}
	d.trx = newTransaction(d)

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return d, nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()
	if nil != d.db {
		err := d.db.Close()
		if nil != err {
			d.log.Errorf("close error: %s", err)
		}
		d.db = nil
	}
}

// Begin - start a batch of changes
//
// only one transaction may be open at a time, a second Begin blocks
// until the first is committed or aborted
func (d *Database) Begin() (Transaction, error) {
	d.RLock()
	closed := nil == d.db
	d.RUnlock()
	if closed {
		return nil, fault.DatabaseIsNotSet
	}
	d.trx.begin()
	return d.trx, nil
}

// return:
//   version number (zero if not set)
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
