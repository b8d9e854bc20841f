// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/lifecycle"
)

// internal constants
const (
	queueSize         = 1000
	defaultListenSize = 100
)

// Message - an event and its name
type Message struct {
	Command string
	Event   lifecycle.Event
}

// Bus - bounded queue with broadcast to any number of listeners
type Bus struct {
	sync.RWMutex

	log       *logger.L
	queue     chan Message
	listeners []chan Message
	dropped   counter.Counter
	shutdown  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New - create a bus and start its distributor
func New() *Bus {
	bus := &Bus{
		log:      logger.New("messagebus"),
		queue:    make(chan Message, queueSize),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go bus.distribute()
	return bus
}

// Emit - queue an event, never blocks
func (bus *Bus) Emit(event lifecycle.Event) {
	bus.Send(string(event.Kind), event)
}

// Send - queue a message, dropping it if the queue is full
func (bus *Bus) Send(command string, event lifecycle.Event) {
	select {
	case bus.queue <- Message{Command: command, Event: event}:
	default:
		n := bus.dropped.Increment()
		bus.log.Warnf("queue full, dropped: %s  total dropped: %d", command, n)
	}
}

// Chan - a new listener channel receiving every later message
//
// size 0 selects the default buffer
func (bus *Bus) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultListenSize
	}
	c := make(chan Message, size)

	bus.Lock()
	bus.listeners = append(bus.listeners, c)
	bus.Unlock()

	return c
}

// Release - stop delivering to a listener and close its channel
func (bus *Bus) Release(c <-chan Message) {
	bus.Lock()
	defer bus.Unlock()

	for i, l := range bus.listeners {
		if (<-chan Message)(l) == c {
			bus.listeners = append(bus.listeners[:i], bus.listeners[i+1:]...)
			close(l)
			return
		}
	}
}

// Dropped - number of messages lost to a full queue or a slow listener
func (bus *Bus) Dropped() uint64 {
	return bus.dropped.Uint64()
}

// Close - stop distributing and close all listeners
//
// messages still queued are delivered first; later calls only wait
func (bus *Bus) Close() {
	bus.closeOnce.Do(func() {
		close(bus.shutdown)
	})
	<-bus.done
}

func (bus *Bus) distribute() {
	defer close(bus.done)

loop:
	for {
		select {
		case <-bus.shutdown:
			break loop
		case item := <-bus.queue:
			bus.broadcast(item)
		}
	}

drain:
	for {
		select {
		case item := <-bus.queue:
			bus.broadcast(item)
		default:
			break drain
		}
	}

	bus.Lock()
	for _, l := range bus.listeners {
		close(l)
	}
	bus.listeners = nil
	bus.Unlock()
}

func (bus *Bus) broadcast(item Message) {
	bus.RLock()
	defer bus.RUnlock()

	for _, l := range bus.listeners {
		select {
		case l <- item:
		default:
			bus.dropped.Increment()
		}
	}
}
