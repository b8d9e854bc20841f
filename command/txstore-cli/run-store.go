// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txstored/transactionrecord"
)

func runStore(c *cli.Context) error {
	m := getMetadata(c)

	payload, err := readFile(c.String("file"))
	if nil != err {
		return err
	}
	id := c.Uint64("authorization")

	if nil == m.key {
		return ErrRequiredSeed
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	var record *transactionrecord.TransactionRecord
	if 0 == id {
		record, err = client.Store(payload)
	} else {
		record, err = client.StoreWithAuthorization(payload, id)
	}
	if nil != err {
		return err
	}

	return printJson(m.w, record)
}

func runRenew(c *cli.Context) error {
	m := getMetadata(c)

	ref, err := checkRef(c.String("ref"))
	if nil != err {
		return err
	}
	if nil == m.key {
		return ErrRequiredSeed
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	record, err := client.Renew(ref)
	if nil != err {
		return err
	}

	return printJson(m.w, record)
}

func runGet(c *cli.Context) error {
	m := getMetadata(c)

	ref, err := checkRef(c.String("ref"))
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	record, err := client.Get(ref)
	if nil != err {
		return err
	}

	return printJson(m.w, record)
}
