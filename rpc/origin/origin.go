// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package origin - signed RPC requests and the caller they identify
//
// a request is signed over a digest of its method, timestamp and
// arguments; the configured authorizer key is the root caller
package origin

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/txstored/account"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/lifecycle"
	"github.com/bitmark-inc/txstored/merkle"
)

const (
	requestTag = "txstored/request/v1"

	// DefaultWindow - accepted clock difference for a signed request
	DefaultWindow = 5 * time.Minute
)

// Authentication - signature block carried by a request
type Authentication struct {
	Account   *account.Account  `json:"account"`
	Timestamp int64             `json:"timestamp,string"`
	Signature account.Signature `json:"signature"`
}

// Digest - the message signed for a request
func Digest(method string, timestamp int64, parts ...[]byte) []byte {
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(timestamp))

	all := make([][]byte, 0, len(parts)+2)
	all = append(all, []byte(method), ts)
	all = append(all, parts...)

	d := merkle.NewTaggedDigest(requestTag, all...)
	return d[:]
}

// Sign - create the authentication block for a request
func Sign(key *account.PrivateKey, method string, now time.Time, parts ...[]byte) *Authentication {
	timestamp := now.Unix()
	return &Authentication{
		Account:   key.Account(),
		Timestamp: timestamp,
		Signature: key.Sign(Digest(method, timestamp, parts...)),
	}
}

// Verifier - maps authenticated requests to callers
type Verifier struct {
	authorizer *account.Account
	test       bool
	window     time.Duration
	now        func() time.Time
}

// NewVerifier - authorizer may be nil, then no request is root
func NewVerifier(authorizer *account.Account, test bool, window time.Duration) *Verifier {
	return &Verifier{
		authorizer: authorizer,
		test:       test,
		window:     window,
		now:        time.Now,
	}
}

// Origin - the caller of a request
//
// a missing authentication block is an unsigned caller
func (v *Verifier) Origin(auth *Authentication, method string, parts ...[]byte) (lifecycle.Origin, error) {
	if nil == auth || nil == auth.Account {
		return lifecycle.None(), nil
	}

	if v.test != auth.Account.IsTesting() {
		return lifecycle.Origin{}, fault.WrongNetworkForPublicKey
	}

	skew := v.now().Sub(time.Unix(auth.Timestamp, 0))
	if skew > v.window || -skew > v.window {
		return lifecycle.Origin{}, fault.InvalidTimestamp
	}

	err := auth.Account.CheckSignature(Digest(method, auth.Timestamp, parts...), auth.Signature)
	if nil != err {
		return lifecycle.Origin{}, err
	}

	if nil != v.authorizer && string(v.authorizer.PublicKeyBytes()) == string(auth.Account.PublicKeyBytes()) {
		return lifecycle.Root(), nil
	}
	return lifecycle.Signed(auth.Account.PublicKeyBytes()), nil
}
