// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coordinator - the lifecycle operations reachable over RPC
package coordinator

import (
	"github.com/bitmark-inc/txstored/authorization"
	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Coordinator - implemented by *lifecycle.Coordinator
type Coordinator interface {
	Store(lifecycle.Origin, []byte) (*transactionrecord.TransactionRecord, error)
	StoreWithAuthorization(lifecycle.Origin, []byte, uint64) (*transactionrecord.TransactionRecord, error)
	Renew(lifecycle.Origin, transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, error)
	Get(transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, bool)
	CheckProof(lifecycle.Origin, *proof.ChunkProof) error
	Obligation() (*transactionrecord.Obligation, bool)
	Authorize(lifecycle.Origin, uint32, uint32, uint64) (*authorization.Entry, error)
	Authorization(uint64) (*authorization.Entry, bool)
	Height() (uint64, bool)
	Parameters() chain.Parameters
	Statistics() *lifecycle.Statistics
}

var _ Coordinator = &lifecycle.Coordinator{}
