// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC call describing the running node
package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Head - the latest produced block
type Head interface {
	GetNew() (merkle.Digest, uint64)
}

// Node - type for RPC calls
type Node struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Start       time.Time
	Version     string
	Chain       string
	Coordinator coordinator.Coordinator
	Head        Head
	counter     *counter.Counter
}

// New - create the node service
func New(log *logger.L, c coordinator.Coordinator, head Head, chainName string, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:       start,
		Version:     version,
		Chain:       chainName,
		Coordinator: c,
		Head:        head,
		counter:     counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain      string           `json:"chain"`
	Block      BlockInfo        `json:"block"`
	RPCs       uint64           `json:"rpcs"`
	Counters   Counters         `json:"counters"`
	Parameters chain.Parameters `json:"parameters"`
	Version    string           `json:"version"`
	Uptime     string           `json:"uptime"`
}

// BlockInfo - the block being built and the last produced one
type BlockInfo struct {
	Height uint64 `json:"height"`
	Open   bool   `json:"open"`
	Hash   string `json:"hash"`
}

// Counters - lifecycle totals since start
type Counters struct {
	Stored     uint64 `json:"stored"`
	Renewed    uint64 `json:"renewed"`
	Pruned     uint64 `json:"pruned"`
	Satisfied  uint64 `json:"satisfied"`
	Unresolved uint64 `json:"unresolved"`
	Rejected   uint64 `json:"rejected"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Coordinator || nil == node.Head {
		return fault.DatabaseIsNotSet
	}

	digest, _ := node.Head.GetNew()
	height, open := node.Coordinator.Height()

	statistics := node.Coordinator.Statistics()

	reply.Chain = node.Chain
	reply.Block = BlockInfo{
		Height: height,
		Open:   open,
		Hash:   digest.String(),
	}
	reply.RPCs = node.counter.Uint64()
	reply.Counters = Counters{
		Stored:     statistics.Stored.Uint64(),
		Renewed:    statistics.Renewed.Uint64(),
		Pruned:     statistics.Pruned.Uint64(),
		Satisfied:  statistics.Satisfied.Uint64(),
		Unresolved: statistics.Unresolved.Uint64(),
		Rejected:   statistics.Rejected.Uint64(),
	}
	reply.Parameters = node.Coordinator.Parameters()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
