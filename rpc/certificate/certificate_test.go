// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txstored/fault"
	"github.com/bitmark-inc/txstored/fixtures"
	"github.com/bitmark-inc/txstored/rpc/certificate"
)

func TestGenerateAndLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate-test")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	require.Nil(t, certificate.Generate("test", cer, key, []string{"127.0.0.1"}), "generate")
	assert.Equal(t, fault.CertificateFileAlreadyExists, certificate.Generate("test", cer, key, nil), "overwrite")

	tlsConfig, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "test", cer, key)
	require.Nil(t, err, "load")

	pair, err := tls.LoadX509KeyPair(cer, key)
	require.Nil(t, err, "key pair")

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pair accepted")

	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", "/nonexistent.crt", "/nonexistent.key")
	assert.NotNil(t, err, "missing files accepted")
}
