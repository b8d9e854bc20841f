// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/txstored/account"
	"github.com/bitmark-inc/txstored/fault"
)

func TestSeedRoundTrip(t *testing.T) {
	for _, test := range []bool{false, true} {
		seed, err := account.NewBase58Seed(test)
		require.Nil(t, err, "new seed")

		key1, err := account.PrivateKeyFromBase58Seed(seed)
		require.Nil(t, err, "decode seed")
		key2, err := account.PrivateKeyFromBase58Seed(seed)
		require.Nil(t, err, "decode seed")

		assert.Equal(t, test, key1.IsTesting(), "network")
		assert.Equal(t, key1.PrivateKey, key2.PrivateKey, "derivation not deterministic")
		assert.Equal(t, ed25519.PrivateKeySize, len(key1.PrivateKey), "key length")
	}
}

func TestSeedErrors(t *testing.T) {
	seed, err := account.NewBase58Seed(true)
	require.Nil(t, err, "new seed")
	raw, err := base58.Decode(seed)
	require.Nil(t, err, "decode")

	_, err = account.PrivateKeyFromBase58Seed("0OIl")
	assert.Equal(t, fault.CannotDecodeSeed, err, "bad base58")

	_, err = account.PrivateKeyFromBase58Seed(base58.Encode(raw[:len(raw)-1]))
	assert.Equal(t, fault.InvalidKeyLength, err, "short seed")

	corrupt := append([]byte{}, raw...)
	corrupt[10] ^= 0x01
	_, err = account.PrivateKeyFromBase58Seed(base58.Encode(corrupt))
	assert.Equal(t, fault.ChecksumMismatch, err, "corrupt seed")

	header := append([]byte{}, raw...)
	header[0] = 0x00
	_, err = account.PrivateKeyFromBase58Seed(base58.Encode(header))
	assert.Equal(t, fault.InvalidSeedHeader, err, "bad header")
}

func TestAccountText(t *testing.T) {
	seed, err := account.NewBase58Seed(true)
	require.Nil(t, err, "new seed")
	key, err := account.PrivateKeyFromBase58Seed(seed)
	require.Nil(t, err, "decode seed")

	a := key.Account()
	assert.True(t, a.IsTesting(), "network")

	decoded, err := account.AccountFromBase58(a.String())
	require.Nil(t, err, "decode account")
	assert.Equal(t, a, decoded, "round trip")

	b, err := json.Marshal(struct {
		Owner *account.Account `json:"owner"`
	}{a})
	require.Nil(t, err, "marshal")
	assert.Equal(t, `{"owner":"`+a.String()+`"}`, string(b), "json")

	var back struct {
		Owner account.Account `json:"owner"`
	}
	require.Nil(t, json.Unmarshal(b, &back), "unmarshal")
	assert.Equal(t, *a, back.Owner, "json round trip")

	text := []byte(a.String())
	text[5] ^= 0x01
	_, err = account.AccountFromBase58(string(text))
	assert.NotNil(t, err, "corrupt text accepted")
}

func TestAccountFromBytes(t *testing.T) {
	public, _, err := ed25519.GenerateKey(nil)
	require.Nil(t, err, "generate")

	a, err := account.AccountFromPublicKey(public, false)
	require.Nil(t, err, "from public key")

	decoded, err := account.AccountFromBytes(a.Bytes())
	require.Nil(t, err, "from bytes")
	assert.Equal(t, a, decoded, "round trip")

	_, err = account.AccountFromBytes(a.Bytes()[:10])
	assert.Equal(t, fault.InvalidKeyLength, err, "short")

	private := append([]byte{0x10}, public...)
	_, err = account.AccountFromBytes(private)
	assert.Equal(t, fault.NotPublicKey, err, "private variant")

	other := append([]byte{0x21}, public...)
	_, err = account.AccountFromBytes(other)
	assert.Equal(t, fault.InvalidKeyType, err, "algorithm")

	_, err = account.AccountFromPublicKey(public[:5], false)
	assert.Equal(t, fault.InvalidPublicKey, err, "raw short key")
}

func TestSignature(t *testing.T) {
	seed, err := account.NewBase58Seed(false)
	require.Nil(t, err, "new seed")
	key, err := account.PrivateKeyFromBase58Seed(seed)
	require.Nil(t, err, "decode seed")

	message := []byte("store this payload")
	signature := key.Sign(message)

	a := key.Account()
	assert.Nil(t, a.CheckSignature(message, signature), "valid signature")
	assert.Equal(t, fault.InvalidSignature, a.CheckSignature([]byte("other"), signature), "other message")
	assert.Equal(t, fault.InvalidSignature, a.CheckSignature(message, signature[:10]), "short signature")

	text, err := signature.MarshalText()
	require.Nil(t, err, "marshal")
	var back account.Signature
	require.Nil(t, back.UnmarshalText(text), "unmarshal")
	assert.Equal(t, signature, back, "text round trip")
	assert.Equal(t, string(text), signature.String(), "string")
}
