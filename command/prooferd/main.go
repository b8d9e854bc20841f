// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/background"
	"github.com/bitmark-inc/txstored/rpccalls"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// proof daemon main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	key := theConfiguration.key()
	verbose := len(options["verbose"]) > 0
	dial := func() (nodeClient, error) {
		client, err := rpccalls.NewClient(theConfiguration.Connect, key, verbose, os.Stderr)
		if nil != err {
			return nil, err
		}
		return client, nil
	}

	// the chunk size is fixed for the chain
	client, err := rpccalls.NewClient(theConfiguration.Connect, key, verbose, os.Stderr)
	if nil != err {
		log.Criticalf("connect: %q  error: %s", theConfiguration.Connect, err)
		exitwithstatus.Message("%s: connect: %q  error: %s", program, theConfiguration.Connect, err)
	}
	info, err := client.GetInfo()
	client.Close()
	if nil != err {
		log.Criticalf("info error: %s", err)
		exitwithstatus.Message("%s: info error: %s", program, err)
	}
	if info.Chain != theConfiguration.Chain {
		log.Criticalf("node chain: %q  expected: %q", info.Chain, theConfiguration.Chain)
		exitwithstatus.Message("%s: node chain: %q  expected: %q", program, info.Chain, theConfiguration.Chain)
	}
	chunkSize := info.Parameters.ChunkSize
	log.Infof("chain: %s  chunk size: %d", info.Chain, chunkSize)

	index := newPayloadIndex(logger.New("index"), chunkSize)
	err = index.scan(theConfiguration.PayloadDirectory)
	if nil != err {
		log.Criticalf("scan: %q  error: %s", theConfiguration.PayloadDirectory, err)
		exitwithstatus.Message("%s: scan: %q  error: %s", program, theConfiguration.PayloadDirectory, err)
	}
	log.Infof("payloads: %d", index.count())

	watcher, err := newDirectoryWatcher(theConfiguration.PayloadDirectory, index)
	if nil != err {
		log.Criticalf("watcher error: %s", err)
		exitwithstatus.Message("%s: watcher error: %s", program, err)
	}

	processes := background.Processes{
		watcher,
		newSubmitter(dial, index, chunkSize, theConfiguration.pollInterval()),
	}
	running := background.Start(processes, nil)
	defer running.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down...\n")
	}
}
