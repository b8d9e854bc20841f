// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/storage"
)

func fill(t *testing.T, db *storage.Database, keys ...string) {
	trx, err := db.Begin()
	require.Nil(t, err, "begin")
	for _, k := range keys {
		trx.Put(db.Pool.TestData, []byte(k), []byte("data-"+k))
	}
	// a neighbouring pool must never appear in the cursor
	trx.Put(db.Pool.Records, []byte("other"), []byte("other"))
	require.Nil(t, trx.Commit(), "commit")
}

func TestFetch(t *testing.T) {
	db := setupMemory(t)
	defer teardown(db)
	fill(t, db, "key-three", "key-one", "key-two", "key-four")

	cursor := db.Pool.TestData.NewFetchCursor()

	data, err := cursor.Fetch(3)
	require.Nil(t, err, "first fetch")
	require.Equal(t, 3, len(data), "first fetch length")
	assert.Equal(t, "key-four", string(data[0].Key), "first key")
	assert.Equal(t, "data-key-four", string(data[0].Value), "first value")
	assert.Equal(t, "key-one", string(data[1].Key), "second key")
	assert.Equal(t, "key-three", string(data[2].Key), "third key")

	data, err = cursor.Fetch(3)
	require.Nil(t, err, "second fetch")
	require.Equal(t, 1, len(data), "second fetch length")
	assert.Equal(t, "key-two", string(data[0].Key), "last key")

	data, err = cursor.Fetch(3)
	assert.Nil(t, err, "third fetch")
	assert.Equal(t, 0, len(data), "exhausted cursor")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")
}

func TestFetchKeyWithTrailingZero(t *testing.T) {
	db := setupMemory(t)
	defer teardown(db)
	fill(t, db, "a", "a\x00", "a\x00\x00", "b")

	cursor := db.Pool.TestData.NewFetchCursor()
	keys := []string{}
	for {
		data, err := cursor.Fetch(1)
		require.Nil(t, err, "fetch")
		if 0 == len(data) {
			break
		}
		keys = append(keys, string(data[0].Key))
	}
	assert.Equal(t, []string{"a", "a\x00", "a\x00\x00", "b"}, keys, "every key visited once")
}

func TestSeekAndBefore(t *testing.T) {
	db := setupMemory(t)
	defer teardown(db)

	keys := make([]string, 0, 10)
	for i := 0; i < 10; i += 1 {
		keys = append(keys, fmt.Sprintf("k%02d", i))
	}
	fill(t, db, keys...)

	visited := []string{}
	err := db.Pool.TestData.NewFetchCursor().Seek([]byte("k03")).Before([]byte("k07")).Map(func(key []byte, value []byte) error {
		visited = append(visited, string(key))
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, []string{"k03", "k04", "k05", "k06"}, visited, "range")
}

func TestMapStopsOnError(t *testing.T) {
	db := setupMemory(t)
	defer teardown(db)
	fill(t, db, "a", "b", "c")

	stop := fault.InvalidError("stop")
	count := 0
	err := db.Pool.TestData.NewFetchCursor().Map(func(key []byte, value []byte) error {
		count += 1
		if "b" == string(key) {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err, "map error")
	assert.Equal(t, 2, count, "elements visited")
}

func TestLastElement(t *testing.T) {
	db := setupMemory(t)
	defer teardown(db)

	_, found := db.Pool.TestData.LastElement()
	assert.False(t, found, "empty pool")

	fill(t, db, "a", "c", "b")
	e, found := db.Pool.TestData.LastElement()
	assert.True(t, found, "last element")
	assert.Equal(t, "c", string(e.Key), "last key")
}
