// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/urfave/cli"
)

func runAuthorize(c *cli.Context) error {
	m := getMetadata(c)

	count := c.Uint("count")
	bytes := c.Uint("bytes")
	if count > math.MaxUint32 || bytes > math.MaxUint32 {
		return ErrOutOfRange
	}
	if nil == m.key {
		return ErrRequiredSeed
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	entry, err := client.Authorize(uint32(count), uint32(bytes), c.Uint64("expiry"))
	if nil != err {
		return err
	}

	return printJson(m.w, entry)
}

func runAuthorization(c *cli.Context) error {
	m := getMetadata(c)

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	entry, err := client.Authorization(c.Uint64("id"))
	if nil != err {
		return err
	}

	return printJson(m.w, entry)
}
