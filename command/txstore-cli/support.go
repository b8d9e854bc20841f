// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txstored/rpccalls"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// connect to txstored, requests are only signed when a seed was given
func getClient(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.key, m.verbose, m.e)
}

func readFile(name string) ([]byte, error) {
	if "" == name {
		return nil, ErrRequiredFile
	}
	return ioutil.ReadFile(name)
}

func checkRef(s string) (transactionrecord.RecordRef, error) {
	if "" == s {
		return transactionrecord.RecordRef{}, ErrRequiredRef
	}
	return transactionrecord.ParseRecordRef(s)
}
