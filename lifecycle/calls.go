// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/txstored/authorization"
	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Store - keep payload for the storage period, paid for by the
// signed caller
func (c *Coordinator) Store(origin Origin, payload []byte) (*transactionrecord.TransactionRecord, error) {
	c.Lock()
	defer c.Unlock()

	if !c.open {
		return nil, fault.BlockNotOpen
	}
	if origin.IsNone() {
		return nil, fault.Unauthorized
	}
	err := chunk.Validate(payload, c.parameters.MaxTransactionSize)
	if nil != err {
		return nil, err
	}

	record, err := c.store(payload, nil)
	if nil != err {
		return nil, err
	}

	c.meter.Record(OperationStore, origin, StoreWeight(record.Size, record.ChunkCount))
	return record, nil
}

// StoreWithAuthorization - keep payload for the storage period, paid
// for by one use of an authorization
//
// the caller must still be signed: ids are sequential so an id alone
// does not identify its holder
func (c *Coordinator) StoreWithAuthorization(origin Origin, payload []byte, id uint64) (*transactionrecord.TransactionRecord, error) {
	c.Lock()
	defer c.Unlock()

	if !c.open {
		return nil, fault.BlockNotOpen
	}
	if origin.IsNone() {
		return nil, fault.Unauthorized
	}
	err := chunk.Validate(payload, c.parameters.MaxTransactionSize)
	if nil != err {
		return nil, err
	}

	consume := func(trx storage.Transaction) error {
		_, err := c.ledger.Consume(trx, id, 1, uint32(len(payload)), c.height)
		return err
	}
	record, err := c.store(payload, consume)
	if nil != err {
		return nil, err
	}

	c.meter.Record(OperationStoreWithAuthorization, origin, StoreWeight(record.Size, record.ChunkCount))
	return record, nil
}

// store with an optional extra step in the same transaction
func (c *Coordinator) store(payload []byte, before func(storage.Transaction) error) (*transactionrecord.TransactionRecord, error) {
	var record *transactionrecord.TransactionRecord
	err := c.atomically(func(trx storage.Transaction) error {
		if nil != before {
			err := before(trx)
			if nil != err {
				return err
			}
		}
		var err error
		record, err = c.records.Store(trx, payload, c.height, c.parameters.StoragePeriod)
		return err
	})
	if nil != err {
		return nil, err
	}

	c.statistics.Stored.Increment()
	c.sink.Emit(Event{
		Kind:        Stored,
		Block:       c.height,
		Ref:         record.Ref(),
		ContentHash: record.ContentHash,
		Size:        record.Size,
	})
	return record, nil
}

// Renew - keep an existing record for another storage period without
// sending its payload again
func (c *Coordinator) Renew(origin Origin, ref transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, error) {
	c.Lock()
	defer c.Unlock()

	if !c.open {
		return nil, fault.BlockNotOpen
	}
	if origin.IsNone() {
		return nil, fault.Unauthorized
	}

	var record *transactionrecord.TransactionRecord
	err := c.atomically(func(trx storage.Transaction) error {
		var err error
		record, err = c.records.Renew(trx, ref, c.height, c.parameters.StoragePeriod)
		return err
	})
	if nil != err {
		return nil, err
	}

	c.meter.Record(OperationRenew, origin, RenewWeight())
	c.statistics.Renewed.Increment()
	c.sink.Emit(Event{
		Kind:        Renewed,
		Block:       c.height,
		Ref:         record.Ref(),
		ContentHash: record.ContentHash,
		Size:        record.Size,
	})
	return record, nil
}

// Authorize - grant a storage quota, root only
func (c *Coordinator) Authorize(origin Origin, count uint32, bytes uint32, expiry uint64) (*authorization.Entry, error) {
	c.Lock()
	defer c.Unlock()

	if !origin.IsRoot() {
		return nil, fault.Unauthorized
	}
	if !c.open {
		return nil, fault.BlockNotOpen
	}

	var entry *authorization.Entry
	err := c.atomically(func(trx storage.Transaction) error {
		var err error
		entry, err = c.ledger.Authorize(trx, c.height, count, bytes, expiry)
		return err
	})
	if nil != err {
		return nil, err
	}

	c.meter.Record(OperationAuthorize, origin, AuthorizeWeight())
	c.sink.Emit(Event{
		Kind:          AuthorizationGranted,
		Block:         c.height,
		Authorization: entry.Id,
	})
	return entry, nil
}

// CheckProof - satisfy the block's obligation, open to any caller
func (c *Coordinator) CheckProof(origin Origin, p *proof.ChunkProof) error {
	c.Lock()
	defer c.Unlock()

	if !c.open {
		return fault.BlockNotOpen
	}
	obligation, found := c.currentObligation()
	if !found || transactionrecord.AwaitingProof != obligation.State || obligation.Block != c.height {
		return fault.UnexpectedProof
	}

	record, found := c.records.Get(obligation.Target)
	if !found {
		return fault.RecordNotFound
	}

	c.meter.Record(OperationCheckProof, origin, CheckProofWeight(p.PathLength()))

	if nil == p || p.ChunkIndex != obligation.ChunkIndex || !proof.Verify(p, record.ContentHash, record.ChunkCount) {
		c.statistics.Rejected.Increment()
		c.sink.Emit(Event{
			Kind:        ProofChecked,
			Block:       c.height,
			Ref:         obligation.Target,
			ContentHash: record.ContentHash,
			Success:     false,
		})
		c.log.Warnf("block: %d  invalid proof from: %s", c.height, origin)
		return fault.InvalidProof
	}

	obligation.State = transactionrecord.Satisfied
	err := c.atomically(func(trx storage.Transaction) error {
		trx.Put(c.obligation, obligationKey, obligation.Pack())
		return nil
	})
	if nil != err {
		return err
	}

	c.statistics.Satisfied.Increment()
	c.sink.Emit(Event{
		Kind:        ProofChecked,
		Block:       c.height,
		Ref:         obligation.Target,
		ContentHash: record.ContentHash,
		Success:     true,
	})
	c.log.Infof("block: %d  proof accepted for: %s chunk: %d", c.height, obligation.Target, obligation.ChunkIndex)
	return nil
}
