// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/txstored/challenge"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// key of the single obligation
var obligationKey = []byte("current")

// Initialise - open block and fix its proof obligation from the
// block's randomness
//
// only records stored in earlier blocks can be chosen
func (c *Coordinator) Initialise(block uint64, randomness merkle.Digest) error {
	c.Lock()
	defer c.Unlock()

	if c.open {
		return fault.AlreadyInitialised
	}
	if block <= c.height {
		return fault.BlockOutOfSequence
	}

	var obligation *transactionrecord.Obligation
	count, err := c.records.LiveCount(block)
	if nil != err {
		return err
	}
	if k, ok := challenge.SelectRecord(randomness, count); ok {
		record, err := c.records.Nth(block, k)
		if nil != err {
			return err
		}
		candidate := challenge.Candidate{
			Ref:         record.Ref(),
			ChunkCount:  record.ChunkCount,
			ContentHash: record.ContentHash,
		}
		obligation = &transactionrecord.Obligation{
			Block:       block,
			Target:      candidate.Ref,
			ChunkIndex:  challenge.SelectChunk(randomness, candidate),
			ContentHash: record.ContentHash,
			State:       transactionrecord.AwaitingProof,
		}
	}

	err = c.atomically(func(trx storage.Transaction) error {
		if nil == obligation {
			trx.Delete(c.obligation, obligationKey)
		} else {
			trx.Put(c.obligation, obligationKey, obligation.Pack())
		}
		return nil
	})
	if nil != err {
		return err
	}

	c.height = block
	c.open = true

	if nil == obligation {
		c.log.Debugf("block: %d  no records to challenge", block)
	} else {
		c.log.Infof("block: %d  challenge: %s chunk: %d of: %d records", block, obligation.Target, obligation.ChunkIndex, count)
	}
	return nil
}

// Finalise - close block
//
// an obligation still awaiting proof is unresolved; records and
// authorizations that expire at the next block are removed
func (c *Coordinator) Finalise(block uint64) error {
	c.Lock()
	defer c.Unlock()

	if !c.open {
		return fault.NotInitialised
	}
	if block != c.height {
		return fault.BlockOutOfSequence
	}

	obligation, found := c.currentObligation()
	if found && transactionrecord.AwaitingProof == obligation.State {
		obligation.State = transactionrecord.Unresolved
		c.statistics.Unresolved.Increment()
		c.log.Warnf("block: %d  unresolved challenge: %s chunk: %d", block, obligation.Target, obligation.ChunkIndex)
	}

	var pruned []transactionrecord.RecordRef
	var expired []uint64
	err := c.atomically(func(trx storage.Transaction) error {
		var err error
		pruned, err = c.records.PruneExpired(trx, block+1)
		if nil != err {
			return err
		}
		expired, err = c.ledger.Expire(trx, block+1)
		if nil != err {
			return err
		}
		trx.Delete(c.obligation, obligationKey)
		return nil
	})
	if nil != err {
		return err
	}

	c.open = false
	c.statistics.Pruned.Add(uint64(len(pruned)))

	for _, ref := range pruned {
		c.sink.Emit(Event{Kind: RecordPruned, Block: block, Ref: ref})
	}
	for _, id := range expired {
		c.sink.Emit(Event{Kind: AuthorizationExpired, Block: block, Authorization: id})
	}
	return nil
}

// Obligation - the proof obligation of the open block
func (c *Coordinator) Obligation() (*transactionrecord.Obligation, bool) {
	c.Lock()
	defer c.Unlock()
	return c.currentObligation()
}

func (c *Coordinator) currentObligation() (*transactionrecord.Obligation, bool) {
	packed := c.obligation.Get(obligationKey)
	if nil == packed {
		return nil, false
	}
	unpacked, _, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		c.log.Criticalf("corrupt obligation: %x  error: %s", packed, err)
		return nil, false
	}
	obligation, ok := unpacked.(*transactionrecord.Obligation)
	return obligation, ok
}
