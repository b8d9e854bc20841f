// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/txstored/account"
	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/proof"
)

func runApp(t *testing.T, args ...string) (string, error) {
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = ioutil.Discard
	err := app.Run(append([]string{"txstore-cli"}, args...))
	return out.String(), err
}

func TestKeygen(t *testing.T) {
	for _, network := range []string{"local", "testing", "live"} {
		out, err := runApp(t, "--network", network, "keygen")
		require.Nil(t, err, network)

		var reply keygenReply
		require.Nil(t, json.Unmarshal([]byte(out), &reply), "json")

		key, err := account.PrivateKeyFromBase58Seed(reply.Seed)
		require.Nil(t, err, "seed")
		assert.Equal(t, reply.Account, key.Account().String(), "account")
		assert.Equal(t, "live" != network, reply.Test, "test flag")
		assert.Equal(t, reply.Test, key.IsTesting(), "key network")
	}
}

func TestInvalidNetwork(t *testing.T) {
	_, err := runApp(t, "--network", "moon", "keygen")
	assert.Equal(t, ErrInvalidNetwork, err, "network")
}

func TestSeedWrongNetwork(t *testing.T) {
	seed, err := account.NewBase58Seed(false)
	require.Nil(t, err, "seed")

	_, err = runApp(t, "--network", "local", "--seed", seed, "info")
	assert.Equal(t, ErrWrongNetworkForSeed, err, "wrong network")
}

func TestStoreRequiresSeed(t *testing.T) {
	dir, err := ioutil.TempDir("", "txstore-cli")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "payload")
	require.Nil(t, ioutil.WriteFile(name, []byte("some data"), 0600), "write")

	_, err = runApp(t, "store", "--file", name)
	assert.Equal(t, ErrRequiredSeed, err, "unsigned store")

	_, err = runApp(t, "store", "--file", name, "--authorization", "3")
	assert.Equal(t, ErrRequiredSeed, err, "unsigned authorized store")

	_, err = runApp(t, "store")
	assert.Equal(t, ErrRequiredFile, err, "no file")
}

func TestRenewRequiresRef(t *testing.T) {
	_, err := runApp(t, "renew")
	assert.Equal(t, ErrRequiredRef, err, "no ref")

	_, err = runApp(t, "get", "--ref", "12")
	assert.Equal(t, fault.InvalidRecordReference, err, "bad ref")
}

func TestBuildProof(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 100)
	chunks := chunk.Split(payload, 256)
	root := chunk.Commit(chunks)

	p, err := buildProof(payload, 256, root, 2)
	require.Nil(t, err, "build")
	assert.Equal(t, uint32(2), p.ChunkIndex, "index")
	assert.Equal(t, chunks[2], p.ChunkData, "data")
	assert.True(t, proof.Verify(p, root, uint32(len(chunks))), "verify")

	_, err = buildProof(payload, 256, merkle.Digest{}, 2)
	assert.Equal(t, ErrContentMismatch, err, "wrong content")

	_, err = buildProof(payload, 0, root, 2)
	assert.Equal(t, fault.InvalidChunkSize, err, "zero chunk size")

	_, err = buildProof(payload, 256, root, uint32(len(chunks)))
	assert.Equal(t, fault.InvalidChunkIndex, err, "index out of range")
}
