// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for the events produced by
// the lifecycle coordinator
//
// events are queued without blocking the producer and fanned out to
// every listener; a listener that falls behind loses messages
package messagebus
