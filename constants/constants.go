// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// default limits applied to every block
const (
	DefaultMaxBlockTransactions          = 512
	DefaultMaxTransactionSize            = 8 * 1024 * 1024
	DefaultMaxBlockAuthorizationExpiries = 512
)

// default number of blocks a record or authorization is retained
const (
	DefaultStoragePeriod       = 100800
	DefaultAuthorizationPeriod = 100800
)

// ChunkSize - bytes per chunk of a stored payload
const ChunkSize = 256

// DefaultBlockInterval - time between locally produced blocks
const DefaultBlockInterval = 6 * time.Second

// maximum number of RPC connections accepted
const DefaultMaximumConnections = 100
