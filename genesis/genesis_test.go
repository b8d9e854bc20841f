// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txstored/chain"
	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/genesis"
)

func TestDigest(t *testing.T) {
	live, err := genesis.Digest(chain.Live)
	assert.Nil(t, err, "live")
	test, err := genesis.Digest(chain.Testing)
	assert.Nil(t, err, "testing")
	local, err := genesis.Digest(chain.Local)
	assert.Nil(t, err, "local")

	assert.NotEqual(t, live, test, "live and testing")
	assert.NotEqual(t, test, local, "testing and local")

	again, _ := genesis.Digest(chain.Live)
	assert.Equal(t, live, again, "digest must be stable")

	_, err = genesis.Digest("nowhere")
	assert.Equal(t, fault.InvalidChain, err, "unknown chain")
}
