// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txstored/fixtures"
	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/messagebus"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

func TestWeightMeter(t *testing.T) {
	m := newWeightMeter()

	var wg sync.WaitGroup
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(lifecycle.OperationStore, lifecycle.None(), 5)
		}()
	}
	wg.Wait()
	m.Record(lifecycle.OperationCheckProof, lifecycle.None(), 7)

	s := m.snapshot()
	assert.Equal(t, uint64(50), s[lifecycle.OperationStore], "store")
	assert.Equal(t, uint64(7), s[lifecycle.OperationCheckProof], "check proof")
	assert.Equal(t, 2, len(s), "operations")
}

func TestEventLogger(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	bus := messagebus.New()
	defer bus.Close()

	e := newEventLogger(bus)

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		e.Run(nil, shutdown)
		close(done)
	}()

	ref := transactionrecord.RecordRef{Block: 1, Index: 0}
	for _, kind := range []lifecycle.EventKind{
		lifecycle.Stored,
		lifecycle.Renewed,
		lifecycle.RecordPruned,
		lifecycle.ProofChecked,
		lifecycle.AuthorizationGranted,
		lifecycle.AuthorizationExpired,
		"other",
	} {
		bus.Emit(lifecycle.Event{Kind: kind, Block: 1, Ref: ref})
	}

	close(shutdown)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event logger did not stop")
	}
	assert.Equal(t, uint64(0), bus.Dropped(), "dropped")
}
