// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fixtures"
	"github.com/bitmark-inc/txstored/reservoir"
	"github.com/bitmark-inc/txstored/storage"
)

// configure for testing
func setup(t *testing.T, maxBlockTransactions uint32) (*storage.Database, *reservoir.Reservoir) {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	require.Nil(t, err, "open database")

	parameters, err := chain.DefaultParameters(chain.Local)
	require.Nil(t, err, "parameters")
	parameters.MaxBlockTransactions = maxBlockTransactions
	parameters.MaxTransactionSize = 1024

	return db, reservoir.New(reservoir.HandlesFrom(db.Pool), parameters)
}

// post test cleanup
func teardown(db *storage.Database) {
	db.Close()
	fixtures.TeardownTestLogger()
}

// run f in a committed transaction
func inTransaction(t *testing.T, db *storage.Database, f func(storage.Transaction) error) error {
	trx, err := db.Begin()
	require.Nil(t, err, "begin")
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	require.Nil(t, trx.Commit(), "commit")
	return nil
}
