// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - RPC calls for the block's storage proof
package proof

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/txstored/fault"
	chunkproof "github.com/bitmark-inc/txstored/proof"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/origin"
	"github.com/bitmark-inc/txstored/rpc/ratelimit"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

const (
	rateLimitProof = 50
	rateBurstProof = 20
)

// Proof - type for RPC calls
type Proof struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Coordinator coordinator.Coordinator
	Verifier    *origin.Verifier
}

// New - create the proof service
func New(log *logger.L, c coordinator.Coordinator, verifier *origin.Verifier) *Proof {
	return &Proof{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitProof, rateBurstProof),
		Coordinator: c,
		Verifier:    verifier,
	}
}

// ---

// ObligationArguments - empty arguments
type ObligationArguments struct{}

// ObligationReply - the open block and what must be proven in it
type ObligationReply struct {
	Block      uint64                               `json:"block,string"`
	Open       bool                                 `json:"open"`
	Obligation *transactionrecord.Obligation        `json:"obligation,omitempty"`
	Record     *transactionrecord.TransactionRecord `json:"record,omitempty"`
}

// Obligation - the challenge of the current block, if any
func (p *Proof) Obligation(_ *ObligationArguments, reply *ObligationReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	reply.Block, reply.Open = p.Coordinator.Height()
	obligation, found := p.Coordinator.Obligation()
	if !found {
		return nil
	}
	reply.Obligation = obligation
	if record, found := p.Coordinator.Get(obligation.Target); found {
		reply.Record = record
	}
	return nil
}

// ---

// CheckArguments - a chunk proof, signing is optional
type CheckArguments struct {
	Proof          *chunkproof.ChunkProof `json:"proof"`
	Authentication *origin.Authentication `json:"authentication"`
}

// CheckReply - result of the check
type CheckReply struct {
	Accepted bool `json:"accepted"`
}

// Check - submit a proof for the block's obligation
func (p *Proof) Check(arguments *CheckArguments, reply *CheckReply) error {
	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments.Proof {
		return fault.MissingParameters
	}

	o, err := p.Verifier.Origin(arguments.Authentication, "Proof.Check", arguments.Proof.ChunkData)
	if nil != err {
		return err
	}

	err = p.Coordinator.CheckProof(o, arguments.Proof)
	if nil != err {
		p.Log.Debugf("proof rejected: %s  from: %s", err, o)
		return err
	}

	reply.Accepted = true
	return nil
}
