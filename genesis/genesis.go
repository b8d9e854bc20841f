// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - the fixed starting point of each chain
package genesis

import (
	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
)

// BlockNumber - height of the genesis block, the first produced
// block is one above this
const BlockNumber = 0

const genesisTag = "txstored/genesis/v1"

// Digest - the genesis block digest of a chain
func Digest(name string) (merkle.Digest, error) {
	if !chain.Valid(name) {
		return merkle.Digest{}, fault.InvalidChain
	}
	return merkle.NewTaggedDigest(genesisTag, []byte(name)), nil
}
