// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txstored/account"
)

type keygenReply struct {
	Seed    string `json:"seed"`
	Account string `json:"account"`
	Test    bool   `json:"test"`
}

func runKeygen(c *cli.Context) error {
	m := getMetadata(c)

	seed, err := account.NewBase58Seed(m.testnet)
	if nil != err {
		return err
	}
	key, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return err
	}

	return printJson(m.w, keygenReply{
		Seed:    seed,
		Account: key.Account().String(),
		Test:    m.testnet,
	})
}
