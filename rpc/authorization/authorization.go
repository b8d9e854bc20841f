// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authorization - RPC calls that grant and inspect storage
// quotas
package authorization

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/txstored/authorization"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/origin"
	"github.com/bitmark-inc/txstored/rpc/ratelimit"
)

const (
	rateLimitAuthorization = 100
	rateBurstAuthorization = 50
)

// Authorization - type for RPC calls
type Authorization struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Coordinator coordinator.Coordinator
	Verifier    *origin.Verifier
}

// New - create the authorization service
func New(log *logger.L, c coordinator.Coordinator, verifier *origin.Verifier) *Authorization {
	return &Authorization{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitAuthorization, rateBurstAuthorization),
		Coordinator: c,
		Verifier:    verifier,
	}
}

// ---

// AuthorizeArguments - the quota to grant, must be signed by the
// authorizer
type AuthorizeArguments struct {
	Count          uint32                 `json:"count"`
	Bytes          uint32                 `json:"bytes"`
	Expiry         uint64                 `json:"expiry,string"`
	Authentication *origin.Authentication `json:"authentication"`
}

// AuthorizeReply - the granted entry
type AuthorizeReply struct {
	Entry *authorization.Entry `json:"entry"`
}

// Authorize - grant a storage quota
func (a *Authorization) Authorize(arguments *AuthorizeArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	o, err := a.Verifier.Origin(arguments.Authentication, "Authorization.Authorize", AuthorizeParts(arguments.Count, arguments.Bytes, arguments.Expiry)...)
	if nil != err {
		return err
	}

	entry, err := a.Coordinator.Authorize(o, arguments.Count, arguments.Bytes, arguments.Expiry)
	if nil != err {
		return err
	}

	a.Log.Infof("authorized: %d  count: %d  bytes: %d  expiry: %d", entry.Id, entry.RemainingCount, entry.RemainingBytes, entry.ExpiryBlock)
	reply.Entry = entry
	return nil
}

// AuthorizeParts - the signed arguments of an authorize request
func AuthorizeParts(count uint32, bytes uint32, expiry uint64) [][]byte {
	buffer := make([]byte, 16)
	binary.BigEndian.PutUint32(buffer[0:], count)
	binary.BigEndian.PutUint32(buffer[4:], bytes)
	binary.BigEndian.PutUint64(buffer[8:], expiry)
	return [][]byte{buffer}
}

// ---

// GetArguments - the entry to fetch
type GetArguments struct {
	Id uint64 `json:"id,string"`
}

// Get - fetch a live authorization
func (a *Authorization) Get(arguments *GetArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	entry, found := a.Coordinator.Authorization(arguments.Id)
	if !found {
		return fault.RecordNotFound
	}
	reply.Entry = entry
	return nil
}
