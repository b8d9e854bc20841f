// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/txstored/fault"
)

// errors specific to the client
const (
	ErrInvalidNetwork      = fault.InvalidError("invalid network")
	ErrWrongNetworkForSeed = fault.InvalidError("seed is for a different network")
	ErrRequiredFile        = fault.InvalidError("file is required")
	ErrRequiredRef         = fault.InvalidError("record reference is required")
	ErrRequiredSeed        = fault.InvalidError("seed is required to sign this request")
	ErrNoObligation        = fault.NotFoundError("no proof obligation in the open block")
	ErrContentMismatch     = fault.InvalidError("file does not match the challenged content")
	ErrOutOfRange          = fault.InvalidError("value out of range")
)
