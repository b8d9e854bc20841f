// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/mocks"
	"github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

func TestStoreProveExpire(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	data := payload(300, 0x55)
	chunkSize := c.Parameters().ChunkSize

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")
	record, err := c.Store(lifecycle.Signed(account), data)
	require.Nil(t, err, "store")
	assert.Equal(t, transactionrecord.RecordRef{Block: 1, Index: 0}, record.Ref(), "ref")
	assert.Equal(t, uint32(2), record.ChunkCount, "chunk count")
	assert.Equal(t, uint32(300), record.Size, "size")
	assert.Equal(t, chunk.Commit(chunk.Split(data, chunkSize)), record.ContentHash, "content hash")
	require.Nil(t, c.Finalise(1), "finalise")

	require.Nil(t, c.Initialise(2, randomness(2)), "initialise")
	obligation, found := c.Obligation()
	require.True(t, found, "no obligation")
	assert.Equal(t, record.Ref(), obligation.Target, "target")
	assert.Equal(t, record.ContentHash, obligation.ContentHash, "obligation content hash")

	p, err := proof.Build(data, chunkSize, obligation.ChunkIndex)
	require.Nil(t, err, "build proof")

	assert.Nil(t, c.CheckProof(lifecycle.None(), p), "check proof")

	obligation, found = c.Obligation()
	require.True(t, found, "obligation gone")
	assert.Equal(t, transactionrecord.Satisfied, obligation.State, "state")

	assert.Equal(t, fault.UnexpectedProof, c.CheckProof(lifecycle.None(), p), "second proof")
	require.Nil(t, c.Finalise(2), "finalise")
	assert.Equal(t, uint64(1), c.Statistics().Satisfied.Uint64(), "satisfied count")
	assert.Equal(t, uint64(0), c.Statistics().Unresolved.Uint64(), "unresolved count")

	advance(t, c, 10)
	require.Nil(t, c.Initialise(11, randomness(11)), "initialise")
	_, found = c.Get(record.Ref())
	assert.False(t, found, "record still present")
}

func TestInvalidProofKeepsObligation(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	data := payload(1000, 0x21)
	chunkSize := c.Parameters().ChunkSize

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")
	_, err := c.Store(lifecycle.Signed(account), data)
	require.Nil(t, err, "store")
	require.Nil(t, c.Finalise(1), "finalise")

	require.Nil(t, c.Initialise(2, randomness(2)), "initialise")
	obligation, found := c.Obligation()
	require.True(t, found, "no obligation")

	index := obligation.ChunkIndex
	wrongIndex := (index + 1) % chunk.Count(uint32(len(data)), chunkSize)

	p, err := proof.Build(data, chunkSize, wrongIndex)
	require.Nil(t, err, "build proof")
	assert.Equal(t, fault.InvalidProof, c.CheckProof(lifecycle.None(), p), "wrong chunk")

	p, err = proof.Build(data, chunkSize, index)
	require.Nil(t, err, "build proof")
	p.ChunkData[0] ^= 0xff
	assert.Equal(t, fault.InvalidProof, c.CheckProof(lifecycle.None(), p), "tampered chunk")
	assert.Equal(t, fault.InvalidProof, c.CheckProof(lifecycle.None(), nil), "nil proof")

	obligation, _ = c.Obligation()
	assert.Equal(t, transactionrecord.AwaitingProof, obligation.State, "state changed")
	assert.Equal(t, uint64(3), c.Statistics().Rejected.Uint64(), "rejected count")

	p.ChunkData[0] ^= 0xff
	assert.Nil(t, c.CheckProof(lifecycle.Signed(account), p), "valid proof")
}

func TestStoreLimits(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")

	_, err := c.Store(lifecycle.None(), payload(10, 1))
	assert.Equal(t, fault.Unauthorized, err, "unsigned store")

	_, err = c.Store(lifecycle.Signed(account), []byte{})
	assert.Equal(t, fault.EmptyTransaction, err, "empty payload")

	_, err = c.Store(lifecycle.Signed(account), payload(int(c.Parameters().MaxTransactionSize)+1, 1))
	assert.Equal(t, fault.TransactionTooLarge, err, "large payload")

	for i := 0; i < 4; i += 1 {
		record, err := c.Store(lifecycle.Signed(account), payload(10, byte(i)))
		require.Nil(t, err, "store: %d", i)
		assert.Equal(t, uint32(i), record.Index, "index")
	}
	_, err = c.Store(lifecycle.Signed(account), payload(10, 9))
	assert.Equal(t, fault.TooManyTransactions, err, "block full")
	assert.Equal(t, uint64(4), c.Statistics().Stored.Uint64(), "stored count")
}

func TestRenew(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")
	original, err := c.Store(lifecycle.Signed(account), payload(400, 4))
	require.Nil(t, err, "store")
	advance(t, c, 5)

	require.Nil(t, c.Initialise(6, randomness(6)), "initialise")
	_, err = c.Renew(lifecycle.None(), original.Ref())
	assert.Equal(t, fault.Unauthorized, err, "unsigned renew")

	_, err = c.Renew(lifecycle.Signed(account), transactionrecord.RecordRef{Block: 1, Index: 7})
	assert.Equal(t, fault.RecordNotFound, err, "missing record")

	renewed, err := c.Renew(lifecycle.Signed(account), original.Ref())
	require.Nil(t, err, "renew")
	assert.Equal(t, transactionrecord.RecordRef{Block: 6, Index: 0}, renewed.Ref(), "renewed ref")
	assert.Equal(t, original.ContentHash, renewed.ContentHash, "content hash")
	assert.Equal(t, original.ChunkCount, renewed.ChunkCount, "chunk count")
	assert.Equal(t, original.Size, renewed.Size, "size")
	assert.Equal(t, 6+c.Parameters().StoragePeriod, renewed.Expiry, "expiry")

	advance(t, c, 12)
	_, found := c.Get(original.Ref())
	assert.False(t, found, "original still present")
	_, found = c.Get(renewed.Ref())
	assert.True(t, found, "renewed record missing")
}

func TestAuthorizedStore(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")

	_, err := c.Authorize(lifecycle.Signed(account), 2, 100, 5)
	assert.Equal(t, fault.Unauthorized, err, "signed authorize")

	entry, err := c.Authorize(lifecycle.Root(), 2, 100, 5)
	require.Nil(t, err, "authorize")
	assert.Equal(t, uint64(1), entry.Id, "id")

	_, err = c.StoreWithAuthorization(lifecycle.None(), payload(40, 1), entry.Id)
	assert.Equal(t, fault.Unauthorized, err, "unsigned store")
	unchanged, found := c.Authorization(entry.Id)
	require.True(t, found, "entry gone")
	assert.Equal(t, uint32(2), unchanged.RemainingCount, "unsigned store charged count")
	assert.Equal(t, uint32(100), unchanged.RemainingBytes, "unsigned store charged bytes")

	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(101, 1), entry.Id)
	assert.Equal(t, fault.InsufficientAuthorization, err, "too many bytes")

	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(40, 1), entry.Id)
	require.Nil(t, err, "first store")

	remaining, found := c.Authorization(entry.Id)
	require.True(t, found, "entry gone")
	assert.Equal(t, uint32(1), remaining.RemainingCount, "remaining count")
	assert.Equal(t, uint32(60), remaining.RemainingBytes, "remaining bytes")

	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(40, 2), entry.Id)
	require.Nil(t, err, "second store")

	_, found = c.Authorization(entry.Id)
	assert.False(t, found, "exhausted entry present")

	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(1, 3), entry.Id)
	assert.Equal(t, fault.InsufficientAuthorization, err, "exhausted")
}

func TestAuthorizationExpiry(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")

	_, err := c.Authorize(lifecycle.Root(), 1, 100, 1)
	assert.Equal(t, fault.InvalidExpiry, err, "expiry in current block")
	_, err = c.Authorize(lifecycle.Root(), 1, 100, 1+c.Parameters().AuthorizationPeriod+1)
	assert.Equal(t, fault.InvalidExpiry, err, "expiry beyond period")

	entry, err := c.Authorize(lifecycle.Root(), 5, 1000, 3)
	require.Nil(t, err, "authorize")
	require.Nil(t, c.Finalise(1), "finalise")

	require.Nil(t, c.Initialise(2, randomness(2)), "initialise")
	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(10, 1), entry.Id)
	require.Nil(t, err, "store before expiry")
	require.Nil(t, c.Finalise(2), "finalise")

	require.Nil(t, c.Initialise(3, randomness(3)), "initialise")
	_, found := c.Authorization(entry.Id)
	assert.False(t, found, "expired entry present")
	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(10, 1), entry.Id)
	assert.Equal(t, fault.InsufficientAuthorization, err, "expired")
}

func TestFailedStoreRollsBack(t *testing.T) {
	db, c := setup(t, nil, nil)
	defer teardown(db)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")
	entry, err := c.Authorize(lifecycle.Root(), 3, 1000, 5)
	require.Nil(t, err, "authorize")

	for i := 0; i < 4; i += 1 {
		_, err := c.Store(lifecycle.Signed(account), payload(10, byte(i)))
		require.Nil(t, err, "store: %d", i)
	}

	// the ledger is charged before the block limit is hit
	_, err = c.StoreWithAuthorization(lifecycle.Signed(account), payload(10, 9), entry.Id)
	assert.Equal(t, fault.TooManyTransactions, err, "block full")

	remaining, found := c.Authorization(entry.Id)
	require.True(t, found, "entry gone")
	assert.Equal(t, uint32(3), remaining.RemainingCount, "count charged")
	assert.Equal(t, uint32(1000), remaining.RemainingBytes, "bytes charged")
}

func TestEventsAndWeights(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	sink := mocks.NewMockEventSink(ctl)
	meter := mocks.NewMockMeter(ctl)

	db, c := setup(t, sink, meter)
	defer teardown(db)

	origin := lifecycle.Signed(account)
	data := payload(300, 7)

	require.Nil(t, c.Initialise(1, randomness(1)), "initialise")

	meter.EXPECT().Record(lifecycle.OperationAuthorize, lifecycle.Root(), lifecycle.AuthorizeWeight()).Times(1)
	sink.EXPECT().Emit(lifecycle.Event{
		Kind:          lifecycle.AuthorizationGranted,
		Block:         1,
		Authorization: 1,
	}).Times(1)
	_, err := c.Authorize(lifecycle.Root(), 1, 100, 2)
	require.Nil(t, err, "authorize")

	hash := chunk.Commit(chunk.Split(data, c.Parameters().ChunkSize))
	meter.EXPECT().Record(lifecycle.OperationStore, origin, lifecycle.StoreWeight(300, 2)).Times(1)
	sink.EXPECT().Emit(lifecycle.Event{
		Kind:        lifecycle.Stored,
		Block:       1,
		Ref:         transactionrecord.RecordRef{Block: 1, Index: 0},
		ContentHash: hash,
		Size:        300,
	}).Times(1)
	_, err = c.Store(origin, data)
	require.Nil(t, err, "store")

	// failed calls neither charge nor notify
	_, err = c.Store(lifecycle.None(), data)
	assert.Equal(t, fault.Unauthorized, err, "unsigned store")

	sink.EXPECT().Emit(lifecycle.Event{
		Kind:          lifecycle.AuthorizationExpired,
		Block:         1,
		Authorization: 1,
	}).Times(1)
	require.Nil(t, c.Finalise(1), "finalise")

	require.Nil(t, c.Initialise(2, randomness(2)), "initialise")
	obligation, found := c.Obligation()
	require.True(t, found, "no obligation")

	p, err := proof.Build(data, c.Parameters().ChunkSize, obligation.ChunkIndex)
	require.Nil(t, err, "build proof")

	gomock.InOrder(
		meter.EXPECT().Record(lifecycle.OperationCheckProof, lifecycle.None(), lifecycle.CheckProofWeight(1)),
		sink.EXPECT().Emit(lifecycle.Event{
			Kind:        lifecycle.ProofChecked,
			Block:       2,
			Ref:         obligation.Target,
			ContentHash: hash,
			Success:     true,
		}),
	)
	require.Nil(t, c.CheckProof(lifecycle.None(), p), "check proof")
}
