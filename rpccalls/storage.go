// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/txstored/rpc/storage"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Store - store a payload as the client's account
func (client *Client) Store(payload []byte) (*transactionrecord.TransactionRecord, error) {
	arguments := storage.StoreArguments{
		Payload:        payload,
		Authentication: client.sign("Storage.Store", payload),
	}
	var reply storage.StoreReply
	err := client.call("Storage.Store", &arguments, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Record, nil
}

// StoreWithAuthorization - store a payload paid for by an authorization
func (client *Client) StoreWithAuthorization(payload []byte, id uint64) (*transactionrecord.TransactionRecord, error) {
	arguments := storage.StoreWithAuthorizationArguments{
		Payload:        payload,
		Id:             id,
		Authentication: client.sign("Storage.StoreWithAuthorization", storage.StoreWithAuthorizationParts(payload, id)...),
	}
	var reply storage.StoreReply
	err := client.call("Storage.StoreWithAuthorization", &arguments, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Record, nil
}

// Renew - extend the retention of a record
func (client *Client) Renew(ref transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, error) {
	arguments := storage.RenewArguments{
		Ref:            ref,
		Authentication: client.sign("Storage.Renew", ref.Key()),
	}
	var reply storage.StoreReply
	err := client.call("Storage.Renew", &arguments, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Record, nil
}

// Get - fetch the metadata of a live record
func (client *Client) Get(ref transactionrecord.RecordRef) (*transactionrecord.TransactionRecord, error) {
	var reply storage.StoreReply
	err := client.call("Storage.Get", &storage.GetArguments{Ref: ref}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Record, nil
}
