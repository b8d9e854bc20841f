// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/txstored/rpc/node"
)

// GetInfo - request status from txstored
func (client *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	err := client.call("Node.Info", &node.InfoArguments{}, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}
