// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/chunk"
	"github.com/bitmark-inc/txstored/merkle"
)

// payloadIndex - local payload files keyed by their content hash
//
// several files may hold the same content
type payloadIndex struct {
	sync.RWMutex

	log       *logger.L
	chunkSize uint32
	byHash    map[merkle.Digest]map[string]struct{}
	byFile    map[string]merkle.Digest
}

func newPayloadIndex(log *logger.L, chunkSize uint32) *payloadIndex {
	return &payloadIndex{
		log:       log,
		chunkSize: chunkSize,
		byHash:    make(map[merkle.Digest]map[string]struct{}),
		byFile:    make(map[string]merkle.Digest),
	}
}

// scan - index every regular file in a directory
func (idx *payloadIndex) scan(directory string) error {
	files, err := ioutil.ReadDir(directory)
	if nil != err {
		return err
	}
	for _, f := range files {
		if !f.Mode().IsRegular() {
			continue
		}
		idx.add(filepath.Join(directory, f.Name()))
	}
	return nil
}

// add - index or re-index one file
func (idx *payloadIndex) add(fileName string) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		idx.log.Warnf("read: %q  error: %s", fileName, err)
		return
	}
	if 0 == len(data) {
		idx.remove(fileName)
		return
	}
	hash := chunk.Commit(chunk.Split(data, idx.chunkSize))

	idx.Lock()
	defer idx.Unlock()

	if old, ok := idx.byFile[fileName]; ok && old != hash {
		idx.unlink(old, fileName)
	}
	idx.byFile[fileName] = hash
	files, ok := idx.byHash[hash]
	if !ok {
		files = make(map[string]struct{})
		idx.byHash[hash] = files
	}
	files[fileName] = struct{}{}
	idx.log.Debugf("indexed: %q  content: %s", fileName, hash)
}

func (idx *payloadIndex) remove(fileName string) {
	idx.Lock()
	defer idx.Unlock()

	hash, ok := idx.byFile[fileName]
	if !ok {
		return
	}
	delete(idx.byFile, fileName)
	idx.unlink(hash, fileName)
	idx.log.Debugf("removed: %q", fileName)
}

// drop one holder of the content, lock must be held
func (idx *payloadIndex) unlink(hash merkle.Digest, fileName string) {
	files, ok := idx.byHash[hash]
	if !ok {
		return
	}
	delete(files, fileName)
	if 0 == len(files) {
		delete(idx.byHash, hash)
	}
}

// lookup - a file holding the content, the lowest name if several do
func (idx *payloadIndex) lookup(hash merkle.Digest) (string, bool) {
	idx.RLock()
	defer idx.RUnlock()

	found := ""
	for fileName := range idx.byHash[hash] {
		if "" == found || fileName < found {
			found = fileName
		}
	}
	return found, "" != found
}

func (idx *payloadIndex) count() int {
	idx.RLock()
	defer idx.RUnlock()
	return len(idx.byFile)
}
