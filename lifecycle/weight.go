// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

// Weight - relative cost of an operation
type Weight uint64

// operation names reported to the meter
const (
	OperationStore                  = "store"
	OperationStoreWithAuthorization = "store-with-authorization"
	OperationRenew                  = "renew"
	OperationCheckProof             = "check-proof"
	OperationAuthorize              = "authorize"
)

const (
	storeBaseWeight      = 20000
	storeWeightPerByte   = 10
	storeWeightPerChunk  = 2000
	renewWeight          = 25000
	checkProofBaseWeight = 30000
	checkProofPerLevel   = 3000
	authorizeWeight      = 15000
)

// Meter - receiver of operation costs
type Meter interface {
	Record(operation string, origin Origin, weight Weight)
}

// NullMeter - discards every cost
type NullMeter struct{}

// Record - do nothing
func (NullMeter) Record(string, Origin, Weight) {}

// StoreWeight - cost of storing a payload of size bytes split into
// chunks
func StoreWeight(size uint32, chunks uint32) Weight {
	return Weight(storeBaseWeight + uint64(size)*storeWeightPerByte + uint64(chunks)*storeWeightPerChunk)
}

// RenewWeight - cost of a renewal
func RenewWeight() Weight {
	return renewWeight
}

// CheckProofWeight - cost of verifying a proof with the given number
// of path digests
func CheckProofWeight(pathLength int) Weight {
	return Weight(checkProofBaseWeight + uint64(pathLength)*checkProofPerLevel)
}

// AuthorizeWeight - cost of granting an authorization
func AuthorizeWeight() Weight {
	return authorizeWeight
}
