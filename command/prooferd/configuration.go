// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/account"
	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/configuration"
	"github.com/bitmark-inc/txstored/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPayloadDirectory = "payloads"
	defaultConnect          = "127.0.0.1:2130"
	defaultPollInterval     = 2 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "prooferd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// Configuration - proof daemon settings
type Configuration struct {
	DataDirectory    string `gluamapper:"data_directory" json:"data_directory"`
	PidFile          string `gluamapper:"pidfile" json:"pidfile"`
	Chain            string `gluamapper:"chain" json:"chain"`
	PayloadDirectory string `gluamapper:"payload_directory" json:"payload_directory"`

	// txstored client RPC address
	Connect      string `gluamapper:"connect" json:"connect"`
	PollInterval int    `gluamapper:"poll_interval" json:"poll_interval"`

	// optional base58 seed, proofs are accepted unsigned
	Seed string `gluamapper:"seed" json:"-"`

	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:    defaultDataDirectory,
		PidFile:          "", // no PidFile by default
		Chain:            chain.Live,
		PayloadDirectory: defaultPayloadDirectory,
		Connect:          defaultConnect,
		PollInterval:     defaultPollInterval,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	if options.PollInterval <= 0 {
		return nil, fmt.Errorf("Poll interval: %d is not positive", options.PollInterval)
	}

	if "" == options.Connect {
		return nil, fmt.Errorf("Connect: address is required")
	}

	if "" != options.Seed {
		key, err := account.PrivateKeyFromBase58Seed(options.Seed)
		if nil != err {
			return nil, fmt.Errorf("Seed: error: %s", err)
		}
		if key.IsTesting() != (chain.Live != options.Chain) {
			return nil, fmt.Errorf("Seed: is for the wrong network")
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if the log file is not a simple file name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.PayloadDirectory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := util.EnsureDirectory(*d); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

func (c *Configuration) pollInterval() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

// signing key, nil if none configured
func (c *Configuration) key() *account.PrivateKey {
	if "" == c.Seed {
		return nil
	}
	key, _ := account.PrivateKeyFromBase58Seed(c.Seed)
	return key
}
