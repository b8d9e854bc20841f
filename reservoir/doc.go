// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - storage for transaction records
//
// each record is kept under its block number and index until the
// block its storage period ends in; an expiry index allows pruning
// without scanning the live records
package reservoir
