// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/authorization"
	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/reservoir"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Statistics - running totals since start
type Statistics struct {
	Stored     counter.Counter
	Renewed    counter.Counter
	Pruned     counter.Counter
	Satisfied  counter.Counter
	Unresolved counter.Counter
	Rejected   counter.Counter
}

// Coordinator - owns the record store, the authorization ledger and
// the proof obligation of one database
//
// every entry point is serialised; each state change runs in a single
// storage transaction that is discarded on error
type Coordinator struct {
	sync.Mutex

	log        *logger.L
	db         *storage.Database
	parameters chain.Parameters
	records    *reservoir.Reservoir
	ledger     *authorization.Ledger
	obligation *storage.PoolHandle
	sink       EventSink
	meter      Meter

	height uint64 // last initialised block
	open   bool   // between Initialise and Finalise

	statistics Statistics
}

// New - create a coordinator whose last finalised block is height
//
// a nil sink or meter discards events or costs
func New(db *storage.Database, parameters chain.Parameters, height uint64, sink EventSink, meter Meter) (*Coordinator, error) {
	err := parameters.Validate()
	if nil != err {
		return nil, err
	}
	if nil == sink {
		sink = NullSink{}
	}
	if nil == meter {
		meter = NullMeter{}
	}

	c := &Coordinator{
		log:        logger.New("lifecycle"),
		db:         db,
		parameters: parameters,
		records:    reservoir.New(reservoir.HandlesFrom(db.Pool), parameters),
		ledger:     authorization.New(authorization.HandlesFrom(db.Pool), parameters),
		obligation: db.Pool.Obligation,
		sink:       sink,
		meter:      meter,
		height:     height,
	}
	c.log.Infof("start at height: %d  storage period: %d", height, parameters.StoragePeriod)
	return c, nil
}

// Parameters - the chain limits in force
func (c *Coordinator) Parameters() chain.Parameters {
	return c.parameters
}

// Height - the current block and whether it is open
func (c *Coordinator) Height() (uint64, bool) {
	c.Lock()
	defer c.Unlock()
	return c.height, c.open
}

// Statistics - running totals
func (c *Coordinator) Statistics() *Statistics {
	return &c.statistics
}

// Get - a live record
func (c *Coordinator) Get(ref transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, bool) {
	return c.records.Get(ref)
}

// Authorization - a live authorization entry
func (c *Coordinator) Authorization(id uint64) (*authorization.Entry, bool) {
	return c.ledger.Get(id)
}

// Live - every record stored in blocks before the given block
func (c *Coordinator) Live(before uint64) ([]*transactionrecord.TransactionRecord, error) {
	return c.records.Live(before)
}

// run f in a transaction, committing only if it succeeds
func (c *Coordinator) atomically(f func(storage.Transaction) error) error {
	trx, err := c.db.Begin()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}
