// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle

import (
	"encoding/hex"
)

// OriginKind - class of caller
type OriginKind int

// possible callers
const (
	NoneOrigin OriginKind = iota
	SignedOrigin
	RootOrigin
)

// Origin - who is making a call
type Origin struct {
	Kind    OriginKind
	Account []byte
}

// None - an unsigned caller
func None() Origin {
	return Origin{Kind: NoneOrigin}
}

// Signed - a caller identified by an account
func Signed(account []byte) Origin {
	return Origin{Kind: SignedOrigin, Account: account}
}

// Root - the privileged caller
func Root() Origin {
	return Origin{Kind: RootOrigin}
}

// IsRoot - true for the privileged caller
func (o Origin) IsRoot() bool {
	return RootOrigin == o.Kind
}

// IsNone - true for an unsigned caller
func (o Origin) IsNone() bool {
	return NoneOrigin == o.Kind
}

// String - for logging
func (o Origin) String() string {
	switch o.Kind {
	case SignedOrigin:
		return "signed:" + hex.EncodeToString(o.Account)
	case RootOrigin:
		return "root"
	default:
		return "none"
	}
}
