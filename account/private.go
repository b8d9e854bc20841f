// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txstored/fault"
)

// seed parameters
var (
	seedHeader       = []byte{0x5a, 0xfe, 0x01}
	seedHeaderLength = len(seedHeader)
	seedNonce        = [24]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	seedCount = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedPrefixLength   = 1
	seedKeyLength      = 32
	seedChecksumLength = 4
	seedLength         = 3 + seedPrefixLength + seedKeyLength + seedChecksumLength
)

// PrivateKey - an ed25519 signing key and its network
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewBase58Seed - a fresh random seed in its text form
func NewBase58Seed(test bool) (string, error) {
	secretKey := make([]byte, seedKeyLength)
	_, err := rand.Read(secretKey)
	if nil != err {
		return "", err
	}

	prefix := byte(0x00)
	if test {
		prefix = 0x01
	}

	seed := append(append([]byte{}, seedHeader...), prefix)
	seed = append(seed, secretKey...)
	checksum := sha3.Sum256(seed)
	seed = append(seed, checksum[:seedChecksumLength]...)

	return base58.Encode(seed), nil
}

// PrivateKeyFromBase58Seed - derive the signing key from a seed
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {
	seed, err := base58.Decode(seedBase58Encoded)
	if nil != err || 0 == len(seed) {
		return nil, fault.CannotDecodeSeed
	}
	if seedLength != len(seed) {
		return nil, fault.InvalidKeyLength
	}

	// Check seed header
	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.InvalidSeedHeader
	}

	// Checksum
	checksumStart := len(seed) - seedChecksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	var secretKey [seedKeyLength]byte
	copy(secretKey[:], seed[seedHeaderLength+seedPrefixLength:checksumStart])

	// first byte of prefix is test/live indication
	isTest := 0x01 == seed[seedHeaderLength]

	encrypted := secretbox.Seal([]byte{}, seedCount[:], &seedNonce, &secretKey)

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(encrypted))
	if nil != err {
		return nil, err
	}

	return &PrivateKey{
		Test:       isTest,
		PrivateKey: priv,
	}, nil
}

// Account - the public half of the key
func (privateKey *PrivateKey) Account() *Account {
	return &Account{
		Test:      privateKey.Test,
		PublicKey: privateKey.PrivateKey.Public().(ed25519.PublicKey),
	}
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// IsTesting - whether the key is for a test network
func (privateKey *PrivateKey) IsTesting() bool {
	return privateKey.Test
}
