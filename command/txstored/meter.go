// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/lifecycle"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// weightMeter - running cost totals per operation
type weightMeter struct {
	sync.RWMutex
	totals map[string]*counter.Counter
}

func newWeightMeter() *weightMeter {
	return &weightMeter{
		totals: make(map[string]*counter.Counter),
	}
}

// Record - add the cost of one operation
func (m *weightMeter) Record(operation string, origin lifecycle.Origin, weight lifecycle.Weight) {
	m.RLock()
	c, ok := m.totals[operation]
	m.RUnlock()

	if !ok {
		m.Lock()
		c, ok = m.totals[operation]
		if !ok {
			c = new(counter.Counter)
			m.totals[operation] = c
		}
		m.Unlock()
	}
	c.Add(uint64(weight))
}

func (m *weightMeter) snapshot() map[string]uint64 {
	m.RLock()
	defer m.RUnlock()

	s := make(map[string]uint64, len(m.totals))
	for operation, c := range m.totals {
		s[operation] = c.Uint64()
	}
	return s
}

// statistics - background process logging weights and memory use
type statistics struct {
	log    *logger.L
	meter  *weightMeter
	memory bool
}

// Run - background process
func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			log.Infof("weights: %v", s.meter.snapshot())
			if s.memory {
				s.memstats()
			}
		}
	}
	log.Flush()
}

func (s *statistics) memstats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	text, err := json.Marshal(m)
	if nil != err {
		s.log.Errorf("marshal error: %s", err)
	} else {
		s.log.Debugf("stats: %s", text)
	}
	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	sys := m.Sys / mega
	s.log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, sys)
}
