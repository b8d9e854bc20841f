// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/txstored/rpc/authorization"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

// Authorize - grant a quota, the client's key must be the node's
// authorizer
func (client *Client) Authorize(count uint32, bytes uint32, expiry uint64) (*transactionrecord.AuthorizationEntry, error) {
	arguments := authorization.AuthorizeArguments{
		Count:          count,
		Bytes:          bytes,
		Expiry:         expiry,
		Authentication: client.sign("Authorization.Authorize", authorization.AuthorizeParts(count, bytes, expiry)...),
	}
	var reply authorization.AuthorizeReply
	err := client.call("Authorization.Authorize", &arguments, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Entry, nil
}

// Authorization - fetch a live authorization
func (client *Client) Authorization(id uint64) (*transactionrecord.AuthorizationEntry, error) {
	var reply authorization.AuthorizeReply
	err := client.call("Authorization.Get", &authorization.GetArguments{Id: id}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Entry, nil
}
