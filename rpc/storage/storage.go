// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - RPC calls that store and renew payloads
package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/origin"
	"github.com/bitmark-inc/txstored/rpc/ratelimit"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

const (
	rateLimitStorage = 200 // kilobytes per second
	rateBurstStorage = 16384
)

// Storage - type for RPC calls
type Storage struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Coordinator coordinator.Coordinator
	Verifier    *origin.Verifier
}

// New - create the storage service
func New(log *logger.L, c coordinator.Coordinator, verifier *origin.Verifier) *Storage {
	return &Storage{
		Log:         log,
		Limiter:     rate.NewLimiter(rateLimitStorage, rateBurstStorage),
		Coordinator: c,
		Verifier:    verifier,
	}
}

// ---

// StoreArguments - payload and the signature of its submitter
type StoreArguments struct {
	Payload        []byte                 `json:"payload"`
	Authentication *origin.Authentication `json:"authentication"`
}

// StoreReply - the created record
type StoreReply struct {
	Record *transactionrecord.TransactionRecord `json:"record"`
}

// Store - keep a payload for the storage period
func (storage *Storage) Store(arguments *StoreArguments, reply *StoreReply) error {
	if err := storage.limit(arguments.Payload); nil != err {
		return err
	}

	o, err := storage.Verifier.Origin(arguments.Authentication, "Storage.Store", arguments.Payload)
	if nil != err {
		return err
	}

	record, err := storage.Coordinator.Store(o, arguments.Payload)
	if nil != err {
		return err
	}

	storage.Log.Infof("stored: %s  size: %d  from: %s", record.Ref(), record.Size, o)
	reply.Record = record
	return nil
}

// ---

// StoreWithAuthorizationArguments - payload and the authorization
// paying for it
type StoreWithAuthorizationArguments struct {
	Payload        []byte                 `json:"payload"`
	Id             uint64                 `json:"id,string"`
	Authentication *origin.Authentication `json:"authentication"`
}

// StoreWithAuthorization - keep a payload using one use of an
// authorization, the request must be signed
func (storage *Storage) StoreWithAuthorization(arguments *StoreWithAuthorizationArguments, reply *StoreReply) error {
	if err := storage.limit(arguments.Payload); nil != err {
		return err
	}

	o, err := storage.Verifier.Origin(arguments.Authentication, "Storage.StoreWithAuthorization", StoreWithAuthorizationParts(arguments.Payload, arguments.Id)...)
	if nil != err {
		return err
	}

	record, err := storage.Coordinator.StoreWithAuthorization(o, arguments.Payload, arguments.Id)
	if nil != err {
		return err
	}

	storage.Log.Infof("stored: %s  size: %d  authorization: %d", record.Ref(), record.Size, arguments.Id)
	reply.Record = record
	return nil
}

// StoreWithAuthorizationParts - the signed arguments of an authorized
// store request
func StoreWithAuthorizationParts(payload []byte, id uint64) [][]byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, id)
	return [][]byte{payload, buffer}
}

// ---

// RenewArguments - the record to renew
type RenewArguments struct {
	Ref            transactionrecord.RecordRef `json:"ref"`
	Authentication *origin.Authentication      `json:"authentication"`
}

// Renew - keep an existing record for another storage period
func (storage *Storage) Renew(arguments *RenewArguments, reply *StoreReply) error {
	if err := ratelimit.Limit(storage.Limiter); nil != err {
		return err
	}

	o, err := storage.Verifier.Origin(arguments.Authentication, "Storage.Renew", arguments.Ref.Key())
	if nil != err {
		return err
	}

	record, err := storage.Coordinator.Renew(o, arguments.Ref)
	if nil != err {
		return err
	}

	storage.Log.Infof("renewed: %s as: %s", arguments.Ref, record.Ref())
	reply.Record = record
	return nil
}

// ---

// GetArguments - the record to fetch
type GetArguments struct {
	Ref transactionrecord.RecordRef `json:"ref"`
}

// Get - fetch a live record
func (storage *Storage) Get(arguments *GetArguments, reply *StoreReply) error {
	if err := ratelimit.Limit(storage.Limiter); nil != err {
		return err
	}

	record, found := storage.Coordinator.Get(arguments.Ref)
	if !found {
		return fault.RecordNotFound
	}
	reply.Record = record
	return nil
}

// payloads are charged per kilobyte
func (storage *Storage) limit(payload []byte) error {
	size := len(payload)
	maximumSize := int(storage.Coordinator.Parameters().MaxTransactionSize)
	if 0 == size {
		return fault.EmptyTransaction
	}
	if size > maximumSize {
		if err := ratelimit.Limit(storage.Limiter); nil != err {
			return err
		}
		return fault.TransactionTooLarge
	}
	return ratelimit.LimitN(storage.Limiter, size/1024+1, maximumSize/1024+1)
}
