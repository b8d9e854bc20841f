// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lifecycle - the per block flow of the storage chain
//
// Initialise opens a block and fixes its proof obligation, calls
// during the block store, renew and prove data, and Finalise closes
// the block, pruning records and authorizations that expire with the
// next block.
//
// a record stored at block B with storage period S can be read and
// challenged during blocks B..B+S-1 and is gone at block B+S
package lifecycle
