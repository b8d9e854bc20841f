// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// EventKind - name of an event
type EventKind string

// all events
const (
	Stored               EventKind = "stored"
	Renewed              EventKind = "renewed"
	ProofChecked         EventKind = "proof-checked"
	AuthorizationGranted EventKind = "authorization-granted"
	AuthorizationExpired EventKind = "authorization-expired"
	RecordPruned         EventKind = "record-pruned"
)

// Event - notification of a completed state change
//
// only the fields relevant to the kind are set
type Event struct {
	Kind          EventKind                   `json:"kind"`
	Block         uint64                      `json:"block,string"`
	Ref           transactionrecord.RecordRef `json:"ref"`
	ContentHash   merkle.Digest               `json:"contentHash"`
	Size          uint32                      `json:"size"`
	Authorization uint64                      `json:"authorization,string"`
	Success       bool                        `json:"success"`
}

// EventSink - receiver of events
type EventSink interface {
	Emit(Event)
}

// NullSink - discards every event
type NullSink struct{}

// Emit - do nothing
func (NullSink) Emit(Event) {}
