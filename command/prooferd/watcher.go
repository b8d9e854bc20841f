// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// directoryWatcher - keeps the payload index in step with the directory
type directoryWatcher struct {
	log       *logger.L
	watcher   *fsnotify.Watcher
	directory string
	index     *payloadIndex
}

func newDirectoryWatcher(directory string, index *payloadIndex) (*directoryWatcher, error) {
	log := logger.New("watcher")

	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(directory); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(directory)
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	return &directoryWatcher{
		log:       log,
		watcher:   watcher,
		directory: directory,
		index:     index,
	}, nil
}

// Run - background process
func (w *directoryWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.directory)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			w.process(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	w.watcher.Close()
	log.Info("shutting down…")
	log.Flush()
}

func (w *directoryWatcher) process(event fsnotify.Event) {
	w.log.Debugf("file event: %v", event)

	if "" == event.Name || filepath.Dir(event.Name) != w.directory {
		return
	}

	if watcherEventFileRemove(event) {
		w.index.remove(event.Name)
		return
	}

	if watcherEventFileChange(event) {
		info, err := os.Stat(event.Name)
		if nil != err || !info.Mode().IsRegular() {
			return
		}
		w.index.add(event.Name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write
}
