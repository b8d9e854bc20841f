// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package producer - the local block clock
//
// each interval the open block is finalised, its header recorded and
// the next block initialised with randomness derived from the new
// header
package producer

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/blockheader"
	"github.com/bitmark-inc/txstored/challenge"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/lifecycle"
)

// Producer - drives a coordinator from a block header chain
type Producer struct {
	log         *logger.L
	coordinator *lifecycle.Coordinator
	head        *blockheader.Head
	interval    time.Duration
}

// New - create a producer and open the block after the head
func New(coordinator *lifecycle.Coordinator, head *blockheader.Head, interval time.Duration) (*Producer, error) {
	if interval <= 0 {
		return nil, fault.InvalidParameters
	}

	p := &Producer{
		log:         logger.New("producer"),
		coordinator: coordinator,
		head:        head,
		interval:    interval,
	}

	parent, next := head.GetNew()
	err := coordinator.Initialise(next, challenge.Seed(parent, next))
	if nil != err {
		return nil, err
	}
	p.log.Infof("opened block: %d  interval: %s", next, interval)
	return p, nil
}

// Run - advance one block per interval until shutdown
func (p *Producer) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log
	log.Info("starting…")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case now := <-ticker.C:
			err := p.Advance(now)
			if nil != err {
				log.Errorf("advance error: %s", err)
			}
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

// Advance - finalise the open block and open the next
func (p *Producer) Advance(now time.Time) error {
	height, open := p.coordinator.Height()
	if open {
		err := p.coordinator.Finalise(height)
		if nil != err {
			return err
		}
	}

	parent, number := p.head.GetNew()

	// header for height was recorded but the next block never opened
	if !open && number == height+1 {
		err := p.coordinator.Initialise(number, challenge.Seed(parent, number))
		if nil != err {
			return err
		}
		p.log.Warnf("reopened block: %d", number)
		return nil
	}

	if number != height {
		p.log.Criticalf("coordinator block: %d  header block: %d", height, number)
		return fault.BlockOutOfSequence
	}

	timestamp := uint64(now.Unix())
	digest := blockheader.BlockDigest(parent, number, timestamp)
	err := p.head.Set(number, digest, blockheader.Version, timestamp)
	if nil != err {
		return err
	}

	next := number + 1
	err = p.coordinator.Initialise(next, challenge.Seed(digest, next))
	if nil != err {
		return err
	}

	p.log.Debugf("block: %d  digest: %s", number, digest)
	return nil
}
