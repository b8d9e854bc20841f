// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register every RPC service on one server
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txstored/counter"
	"github.com/bitmark-inc/txstored/rpc/authorization"
	"github.com/bitmark-inc/txstored/rpc/coordinator"
	"github.com/bitmark-inc/txstored/rpc/node"
	"github.com/bitmark-inc/txstored/rpc/origin"
	"github.com/bitmark-inc/txstored/rpc/proof"
	"github.com/bitmark-inc/txstored/rpc/storage"
)

// Create - a server with the Storage, Proof, Authorization and Node
// services
func Create(log *logger.L, version string, rpcCount *counter.Counter, c coordinator.Coordinator, head node.Head, verifier *origin.Verifier, chainName string) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(storage.New(log, c, verifier))
	_ = server.Register(proof.New(log, c, verifier))
	_ = server.Register(authorization.New(log, c, verifier))
	_ = server.Register(node.New(log, c, head, chainName, start, version, rpcCount))

	return server
}
