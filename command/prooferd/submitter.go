// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"net/rpc"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/proof"
	rpcproof "github.com/bitmark-inc/txstored/rpc/proof"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// how long a submitted block is remembered
const answeredExpiry = 10 * time.Minute

// nodeClient - the txstored calls used here
type nodeClient interface {
	Obligation() (*rpcproof.ObligationReply, error)
	Check(*proof.ChunkProof) error
	Close()
}

// submitter - answers obligations for content held locally
type submitter struct {
	log       *logger.L
	dial      func() (nodeClient, error)
	client    nodeClient
	index     *payloadIndex
	chunkSize uint32
	interval  time.Duration
	answered  *cache.Cache

	accepted counter.Counter
	rejected counter.Counter
}

func newSubmitter(dial func() (nodeClient, error), index *payloadIndex, chunkSize uint32, interval time.Duration) *submitter {
	return &submitter{
		log:       logger.New("submitter"),
		dial:      dial,
		index:     index,
		chunkSize: chunkSize,
		interval:  interval,
		answered:  cache.New(answeredExpiry, 2*answeredExpiry),
	}
}

// Run - background process
func (s *submitter) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log
	log.Info("starting…")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			s.poll()
		}
	}

	if nil != s.client {
		s.client.Close()
		s.client = nil
	}
	log.Infof("accepted: %d  rejected: %d", s.accepted.Uint64(), s.rejected.Uint64())
	log.Info("shutting down…")
	log.Flush()
}

// poll - one obligation enquiry, submitting a proof if possible
func (s *submitter) poll() {
	log := s.log

	if nil == s.client {
		client, err := s.dial()
		if nil != err {
			log.Warnf("connect error: %s", err)
			return
		}
		s.client = client
	}

	reply, err := s.client.Obligation()
	if nil != err {
		s.failed(err)
		return
	}

	o := reply.Obligation
	if nil == o || transactionrecord.AwaitingProof != o.State {
		return
	}

	key := strconv.FormatUint(o.Block, 10)
	if _, found := s.answered.Get(key); found {
		return
	}

	fileName, found := s.index.lookup(o.ContentHash)
	if !found {
		log.Debugf("block: %d  content: %s not held", o.Block, o.ContentHash)
		return
	}

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		log.Errorf("read: %q  error: %s", fileName, err)
		return
	}

	p, err := proof.Build(data, s.chunkSize, o.ChunkIndex)
	if nil != err {
		log.Errorf("block: %d  build proof error: %s", o.Block, err)
		return
	}

	// file may have changed since it was indexed
	if !proof.Verify(p, o.ContentHash, chunk.Count(uint32(len(data)), s.chunkSize)) {
		log.Warnf("block: %d  file: %q no longer matches", o.Block, fileName)
		s.index.add(fileName)
		return
	}

	err = s.client.Check(p)
	if nil != err {
		s.failed(err)
		if _, ok := err.(rpc.ServerError); ok {
			s.rejected.Increment()
			s.answered.Set(key, false, cache.DefaultExpiration)
		}
		return
	}

	s.accepted.Increment()
	s.answered.Set(key, true, cache.DefaultExpiration)
	log.Infof("block: %d  ref: %s  chunk: %d  proof accepted", o.Block, o.Target, o.ChunkIndex)
}

// server errors keep the connection, anything else drops it
func (s *submitter) failed(err error) {
	if _, ok := err.(rpc.ServerError); ok {
		s.log.Warnf("rpc error: %s", err)
		return
	}
	s.log.Errorf("connection error: %s", err)
	s.client.Close()
	s.client = nil
}
