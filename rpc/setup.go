// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/rpc/certificate"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/listeners"
	"github.com/bitmark-inc/txstored/rpc/node"
	"github.com/bitmark-inc/txstored/rpc/origin"
	"github.com/bitmark-inc/txstored/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// Services - what the RPC server exposes
type Services struct {
	Coordinator coordinator.Coordinator
	Head        node.Head
	Verifier    *origin.Verifier
	Chain       string
	Version     string
}

// RPC - the running client RPC server
type RPC struct {
	sync.Mutex

	log      *logger.L
	listener listeners.Listener
	count    counter.Counter
}

// Start - load the certificate and start serving
func Start(configuration *listeners.RPCConfiguration, services Services) (*RPC, error) {

	log := logger.New("rpc")
	log.Info("starting…")

	if nil == services.Coordinator || nil == services.Verifier {
		return nil, fault.MissingParameters
	}

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	r := &RPC{
		log: log,
	}

	s := server.Create(log, services.Version, &r.count, services.Coordinator, services.Head, services.Verifier, services.Chain)

	r.listener, err = listeners.NewRPC(configuration, log, &r.count, s, tlsConfig, fingerprint)
	if nil != err {
		return nil, err
	}

	err = r.listener.Serve()
	if nil != err {
		return nil, err
	}

	return r, nil
}

// Connections - number of open client connections
func (r *RPC) Connections() uint64 {
	return r.count.Uint64()
}

// Stop - close the listeners
func (r *RPC) Stop() error {
	r.Lock()
	defer r.Unlock()

	if nil == r.listener {
		return fault.NotInitialised
	}

	r.log.Info("shutting down…")
	r.listener.Stop()
	r.listener = nil

	r.log.Info("finished")
	r.log.Flush()

	return nil
}
