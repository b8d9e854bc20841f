// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"net/rpc"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/fixtures"
	"github.com/bitmark-inc/txstored/merkle"
	"github.com/bitmark-inc/txstored/proof"
	rpcproof "github.com/bitmark-inc/txstored/rpc/proof"
	"github.com/bitmark-inc/txstored/transactionrecord"
)

const testChunkSize = 64

type fakeClient struct {
	obligation *transactionrecord.Obligation
	obligErr   error
	checkErr   error
	proofs     []*proof.ChunkProof
	closed     int
}

func (f *fakeClient) Obligation() (*rpcproof.ObligationReply, error) {
	if nil != f.obligErr {
		return nil, f.obligErr
	}
	return &rpcproof.ObligationReply{Block: 5, Open: true, Obligation: f.obligation}, nil
}

func (f *fakeClient) Check(p *proof.ChunkProof) error {
	f.proofs = append(f.proofs, p)
	return f.checkErr
}

func (f *fakeClient) Close() {
	f.closed += 1
}

func setupDirectory(t *testing.T) string {
	fixtures.SetupTestLogger()
	dir, err := ioutil.TempDir("", "prooferd-test")
	require.Nil(t, err, "temp dir")
	return dir
}

func teardownDirectory(dir string) {
	os.RemoveAll(dir)
	fixtures.TeardownTestLogger()
}

func writePayload(t *testing.T, dir string, name string, data []byte) (string, merkle.Digest) {
	fileName := filepath.Join(dir, name)
	require.Nil(t, ioutil.WriteFile(fileName, data, 0600), "write payload")
	return fileName, chunk.Commit(chunk.Split(data, testChunkSize))
}

func TestPayloadIndex(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	first, firstHash := writePayload(t, dir, "first", bytes.Repeat([]byte{1}, 200))
	_, secondHash := writePayload(t, dir, "second", []byte("short"))
	writePayload(t, dir, "empty", []byte{})

	idx := newPayloadIndex(logger.New(fixtures.LogCategory), testChunkSize)
	require.Nil(t, idx.scan(dir), "scan")
	assert.Equal(t, 2, idx.count(), "count")

	fileName, found := idx.lookup(firstHash)
	assert.True(t, found, "first found")
	assert.Equal(t, first, fileName, "first name")

	_, found = idx.lookup(secondHash)
	assert.True(t, found, "second found")

	// rewrite changes the hash
	_, newHash := writePayload(t, dir, "first", []byte("replaced"))
	idx.add(first)
	_, found = idx.lookup(firstHash)
	assert.False(t, found, "old hash gone")
	_, found = idx.lookup(newHash)
	assert.True(t, found, "new hash")

	idx.remove(first)
	_, found = idx.lookup(newHash)
	assert.False(t, found, "removed")
	assert.Equal(t, 1, idx.count(), "count after remove")
}

func TestPayloadIndexSharedContent(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	content := bytes.Repeat([]byte("shared"), 30)
	a, hash := writePayload(t, dir, "a", content)
	b, _ := writePayload(t, dir, "b", content)

	idx := newPayloadIndex(logger.New(fixtures.LogCategory), testChunkSize)
	require.Nil(t, idx.scan(dir), "scan")

	fileName, found := idx.lookup(hash)
	assert.True(t, found, "shared content found")
	assert.Equal(t, a, fileName, "lowest name first")

	// a changes, b still holds the content
	_, otherHash := writePayload(t, dir, "a", []byte("different content"))
	idx.add(a)

	fileName, found = idx.lookup(hash)
	assert.True(t, found, "still held by b")
	assert.Equal(t, b, fileName, "holder")

	fileName, found = idx.lookup(otherHash)
	assert.True(t, found, "new content of a")
	assert.Equal(t, a, fileName, "new holder")

	// last holder removed
	idx.remove(b)
	_, found = idx.lookup(hash)
	assert.False(t, found, "content gone")
	assert.Equal(t, 1, idx.count(), "count")
}

func TestDirectoryWatcher(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	idx := newPayloadIndex(logger.New(fixtures.LogCategory), testChunkSize)
	w, err := newDirectoryWatcher(dir, idx)
	require.Nil(t, err, "watcher")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(done)
	}()

	fileName, hash := writePayload(t, dir, "watched", []byte("some watched content"))

	assert.Eventually(t, func() bool {
		_, found := idx.lookup(hash)
		return found
	}, 5*time.Second, 10*time.Millisecond, "indexed after create")

	require.Nil(t, os.Remove(fileName), "remove")
	assert.Eventually(t, func() bool {
		_, found := idx.lookup(hash)
		return !found
	}, 5*time.Second, 10*time.Millisecond, "removed from index")

	close(shutdown)
	<-done
}

func TestDirectoryWatcherMissingDirectory(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	idx := newPayloadIndex(logger.New(fixtures.LogCategory), testChunkSize)
	_, err := newDirectoryWatcher("/nonexistent/payloads", idx)
	assert.NotNil(t, err, "missing directory")
}

func setupSubmitter(t *testing.T, dir string, client *fakeClient) (*submitter, merkle.Digest) {
	_, hash := writePayload(t, dir, "payload", bytes.Repeat([]byte("abcdefgh"), 40))

	idx := newPayloadIndex(logger.New(fixtures.LogCategory), testChunkSize)
	require.Nil(t, idx.scan(dir), "scan")

	dial := func() (nodeClient, error) {
		return client, nil
	}
	return newSubmitter(dial, idx, testChunkSize, time.Second), hash
}

func TestSubmitterProves(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	client := &fakeClient{}
	s, hash := setupSubmitter(t, dir, client)

	client.obligation = &transactionrecord.Obligation{
		Block:       5,
		Target:      transactionrecord.RecordRef{Block: 2, Index: 0},
		ChunkIndex:  3,
		ContentHash: hash,
		State:       transactionrecord.AwaitingProof,
	}

	s.poll()
	require.Equal(t, 1, len(client.proofs), "submitted")
	p := client.proofs[0]
	assert.Equal(t, uint32(3), p.ChunkIndex, "chunk index")
	assert.True(t, proof.Verify(p, hash, 5), "verifies")
	assert.Equal(t, uint64(1), s.accepted.Uint64(), "accepted")

	// same block is not submitted twice
	s.poll()
	assert.Equal(t, 1, len(client.proofs), "not resubmitted")
}

func TestSubmitterIgnores(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	client := &fakeClient{}
	s, hash := setupSubmitter(t, dir, client)

	// no obligation
	s.poll()

	// already satisfied
	client.obligation = &transactionrecord.Obligation{
		Block:       5,
		ContentHash: hash,
		State:       transactionrecord.Satisfied,
	}
	s.poll()

	// content not held
	client.obligation = &transactionrecord.Obligation{
		Block:       6,
		ContentHash: merkle.NewDigest([]byte("unknown")),
		State:       transactionrecord.AwaitingProof,
	}
	s.poll()

	assert.Equal(t, 0, len(client.proofs), "nothing submitted")
}

func TestSubmitterRejected(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	client := &fakeClient{
		checkErr: rpc.ServerError("unexpected proof"),
	}
	s, hash := setupSubmitter(t, dir, client)
	client.obligation = &transactionrecord.Obligation{
		Block:       7,
		ContentHash: hash,
		State:       transactionrecord.AwaitingProof,
	}

	s.poll()
	s.poll()
	assert.Equal(t, 1, len(client.proofs), "rejected block is not retried")
	assert.Equal(t, uint64(1), s.rejected.Uint64(), "rejected")
	assert.Equal(t, 0, client.closed, "connection kept")
}

func TestSubmitterReconnects(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	client := &fakeClient{
		obligErr: errors.New("connection reset"),
	}
	s, _ := setupSubmitter(t, dir, client)

	s.poll()
	assert.Equal(t, 1, client.closed, "closed")
	assert.Nil(t, s.client, "dropped")

	client.obligErr = nil
	s.poll()
	assert.NotNil(t, s.client, "redialled")
}

func TestGetConfiguration(t *testing.T) {
	dir := setupDirectory(t)
	defer teardownDirectory(dir)

	name := filepath.Join(dir, "prooferd.conf")
	text := `
local M = {}
M.data_directory = "."
M.chain = "local"
M.connect = "127.0.0.1:2131"
M.poll_interval = 3
return M
`
	require.Nil(t, ioutil.WriteFile(name, []byte(text), 0600), "write config")

	c, err := getConfiguration(name, nil)
	require.Nil(t, err, "configuration")
	assert.Equal(t, "127.0.0.1:2131", c.Connect, "connect")
	assert.Equal(t, 3*time.Second, c.pollInterval(), "interval")
	assert.Equal(t, filepath.Join(filepath.Clean(dir), defaultPayloadDirectory), c.PayloadDirectory, "payloads")
	assert.Nil(t, c.key(), "no key")

	info, err := os.Stat(c.PayloadDirectory)
	require.Nil(t, err, "payload directory")
	assert.True(t, info.IsDir(), "payload directory type")
}
