// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fixtures"
	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/storage"
)

var account = []byte{0x01, 0x02, 0x03, 0x04}

// configure for testing with the local chain limits
func setup(t *testing.T, sink lifecycle.EventSink, meter lifecycle.Meter) (*storage.Database, *lifecycle.Coordinator) {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	require.Nil(t, err, "open database")

	parameters, err := chain.DefaultParameters(chain.Local)
	require.Nil(t, err, "parameters")
	parameters.MaxBlockTransactions = 4

	c, err := lifecycle.New(db, parameters, 0, sink, meter)
	require.Nil(t, err, "new coordinator")

	return db, c
}

// post test cleanup
func teardown(db *storage.Database) {
	db.Close()
	fixtures.TeardownTestLogger()
}

func randomness(block uint64) merkle.Digest {
	return merkle.NewTaggedDigest("test/randomness", []byte{byte(block >> 8), byte(block)})
}

// open then close each block up to and including last
func advance(t *testing.T, c *lifecycle.Coordinator, last uint64) {
	height, open := c.Height()
	if open {
		require.Nil(t, c.Finalise(height), "finalise: %d", height)
	}
	for block := height + 1; block <= last; block += 1 {
		require.Nil(t, c.Initialise(block, randomness(block)), "initialise: %d", block)
		require.Nil(t, c.Finalise(block), "finalise: %d", block)
	}
}

func payload(size int, seed byte) []byte {
	p := make([]byte, size)
	for i := range p {
		p[i] = seed + byte(i*7)
	}
	return p
}
