// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for package tests
package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"
)

// LogCategory - tag used by test log channels
const LogCategory = "testing"

var dir string

// SetupTestLogger - start logging into a temporary directory with
// only critical messages enabled
func SetupTestLogger() {
	var err error
	dir, err = ioutil.TempDir("", "txstored-test")
	if nil != err {
		panic(fmt.Sprintf("cannot create log directory: %s", err))
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	if "" != dir {
		err := os.RemoveAll(dir)
		if nil != err {
			fmt.Println("remove dir with error: ", err)
		}
		dir = ""
	}
}
