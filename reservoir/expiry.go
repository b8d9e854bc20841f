// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"math"

	"github.com/bitmark-inc/txstored/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// PruneExpired - remove every record whose expiry block is at or
// before through
//
// only the expiry index is walked; the per block counts drop with each
// record removed
func (r *Reservoir) PruneExpired(trx storage.Transaction, through uint64) ([]transactionrecord.RecordRef, error) {
	cursor := r.pools.RecordExpiry.NewFetchCursor()
	if through < math.MaxUint64 {
		cursor.Before(blockKey(through + 1))
	}

	keys := make([][]byte, 0, 16)
	err := cursor.Map(func(key []byte, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return nil, err
	}

	pruned := make([]transactionrecord.RecordRef, 0, len(keys))
	for _, key := range keys {
		_, ref, err := fromExpiryKey(key)
		if nil != err {
			r.log.Criticalf("corrupt expiry key: %x", key)
			return nil, err
		}

		trx.Delete(r.pools.RecordExpiry, key)
		if !trx.Has(r.pools.Records, ref.Key()) {
			r.log.Warnf("expiry index without record: %s", ref)
			continue
		}
		trx.Delete(r.pools.Records, ref.Key())

		countKey := blockKey(ref.Block)
		count, _ := trx.GetN(r.pools.BlockRecordCount, countKey)
		if count <= 1 {
			trx.Delete(r.pools.BlockRecordCount, countKey)
		} else {
			trx.PutN(r.pools.BlockRecordCount, countKey, count-1)
		}
		pruned = append(pruned, ref)
	}

	if 0 != len(pruned) {
		r.log.Infof("pruned: %d records expiring through block: %d", len(pruned), through)
	}
	return pruned, nil
}
