// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. index        = position in block as big endian uint32 (4 bytes)
// 5. ref          = block number ++ index (12 bytes)
// 6. id           = authorization id as big endian uint64 (8 bytes)
// 7. count        = big endian uint64 (8 bytes)
//
// Records:
//
//   R ++ ref                   - stored transaction records
//                                data: packed transaction record
//   X ++ expiry block ++ ref   - record expiry index
//                                data: (empty)
//   C ++ block number          - records stored in the block so far
//                                data: count
//
// Authorizations:
//
//   A ++ id                    - authorization entries
//                                data: packed authorization entry
//   E ++ expiry block ++ id    - authorization expiry index
//                                data: (empty)
//   F ++ expiry block          - entries expiring at the block
//                                data: count
//
// Chain:
//
//   O ++ "current"             - proof obligation of the open block
//                                data: packed obligation
//   H ++ "head"                - last finalised block
//                                data: block number ++ digest
//   N ++ name                  - named counters
//                                data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
