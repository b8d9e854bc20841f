// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/messagebus"
)

const eventQueueSize = 1000

// eventLogger - writes every lifecycle event to the log
type eventLogger struct {
	log   *logger.L
	bus   *messagebus.Bus
	queue <-chan messagebus.Message
}

func newEventLogger(bus *messagebus.Bus) *eventLogger {
	return &eventLogger{
		log:   logger.New("events"),
		bus:   bus,
		queue: bus.Chan(eventQueueSize),
	}
}

// Run - background process
func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	log := e.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-e.queue:
			if !ok {
				break loop
			}
			e.write(item.Event)
		}
	}

	e.bus.Release(e.queue)
	log.Infof("dropped events: %d", e.bus.Dropped())
	log.Info("shutting down…")
	log.Flush()
}

func (e *eventLogger) write(event lifecycle.Event) {
	switch event.Kind {
	case lifecycle.Stored, lifecycle.Renewed:
		e.log.Infof("%s: block: %d  ref: %s  size: %d  content: %s", event.Kind, event.Block, event.Ref, event.Size, event.ContentHash)
	case lifecycle.RecordPruned:
		e.log.Debugf("%s: block: %d  ref: %s", event.Kind, event.Block, event.Ref)
	case lifecycle.ProofChecked:
		if event.Success {
			e.log.Infof("%s: block: %d  ref: %s", event.Kind, event.Block, event.Ref)
		} else {
			e.log.Warnf("%s: block: %d  ref: %s  rejected", event.Kind, event.Block, event.Ref)
		}
	case lifecycle.AuthorizationGranted, lifecycle.AuthorizationExpired:
		e.log.Infof("%s: block: %d  id: %d", event.Kind, event.Block, event.Authorization)
	default:
		e.log.Warnf("unknown event: %#v", event)
	}
}
