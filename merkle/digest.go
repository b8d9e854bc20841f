// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/txstored/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a BLAKE2b-256 digest
//
// represented as hex in byte order for print and JSON encoding
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return blake2b.Sum256(record)
}

// NewTaggedDigest - digest of a domain tag followed by all parts
func NewTaggedDigest(tag string, parts ...[]byte) Digest {
	h, err := blake2b.New256(nil)
	if nil != err {
		fault.Panicf("merkle: blake2b: %s", err)
	}
	h.Write([]byte(tag))
	for _, p := range parts {
		h.Write(p)
	}
	var digest Digest
	copy(digest[:], h.Sum(nil))
	return digest
}

// IsZero - true if every byte is zero
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<BLAKE2b-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(DigestLength) {
		return fault.InvalidDigest
	}
	var d Digest
	if _, err := hex.Decode(d[:], s); nil != err {
		return fault.InvalidDigest
	}
	*digest = d
	return nil
}

// DigestFromBytes - convert and validate binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.InvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}
