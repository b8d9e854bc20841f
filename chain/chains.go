// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/bitmark-inc/txstored/constants"
	"github.com/bitmark-inc/txstored/fault"
)

// names of all chains
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// Parameters - limits fixed for the life of a chain
type Parameters struct {
	MaxBlockTransactions          uint32 `gluamapper:"max_block_transactions" json:"maxBlockTransactions"`
	MaxTransactionSize            uint32 `gluamapper:"max_transaction_size" json:"maxTransactionSize"`
	StoragePeriod                 uint64 `gluamapper:"storage_period" json:"storagePeriod,string"`
	MaxBlockAuthorizationExpiries uint32 `gluamapper:"max_block_authorization_expiries" json:"maxBlockAuthorizationExpiries"`
	AuthorizationPeriod           uint64 `gluamapper:"authorization_period" json:"authorizationPeriod,string"`
	ChunkSize                     uint32 `gluamapper:"chunk_size" json:"chunkSize"`
}

// DefaultParameters - the parameters of a named chain
func DefaultParameters(name string) (Parameters, error) {
	p := Parameters{
		MaxBlockTransactions:          constants.DefaultMaxBlockTransactions,
		MaxTransactionSize:            constants.DefaultMaxTransactionSize,
		StoragePeriod:                 constants.DefaultStoragePeriod,
		MaxBlockAuthorizationExpiries: constants.DefaultMaxBlockAuthorizationExpiries,
		AuthorizationPeriod:           constants.DefaultAuthorizationPeriod,
		ChunkSize:                     constants.ChunkSize,
	}

	switch name {
	case Live:
		// no change
	case Testing:
		p.StoragePeriod = 14400
		p.AuthorizationPeriod = 14400
	case Local:
		p.StoragePeriod = 10
		p.AuthorizationPeriod = 10
	default:
		return Parameters{}, fault.InvalidChain
	}
	return p, nil
}

// Validate - every limit must be non-zero
func (p Parameters) Validate() error {
	if 0 == p.MaxBlockTransactions ||
		0 == p.MaxTransactionSize ||
		0 == p.StoragePeriod ||
		0 == p.MaxBlockAuthorizationExpiries ||
		0 == p.AuthorizationPeriod ||
		0 == p.ChunkSize {
		return fault.InvalidParameters
	}
	return nil
}
