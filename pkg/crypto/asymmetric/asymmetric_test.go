// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package asymmetric

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bundle generation is slow (RSA-2048); share one across tests.
func testBundle(t *testing.T) *Bundle {
	t.Helper()
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)
	return bundle
}

func TestCodec_GenerateBundle(t *testing.T) {
	bundle := testBundle(t)

	pub, err := LoadPublicKey(bundle.PublicKeyB64)
	require.NoError(t, err)
	assert.Equal(t, RSABits, pub.N.BitLen())

	priv, err := LoadPrivateKey(bundle.PrivateKeyB64)
	require.NoError(t, err)
	assert.Equal(t, pub.N, priv.PublicKey.N)

	salt, err := base64.StdEncoding.DecodeString(bundle.SaltB64)
	require.NoError(t, err)
	assert.Len(t, salt, SaltBytes)
}

func TestCodec_EncryptDecryptRoundTrip(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	cipherB64, err := codec.Encrypt("namaste-from-e2e", bundle.PublicKeyB64)
	require.NoError(t, err)

	// RSA-2048 output is always exactly 256 bytes
	ct, err := base64.StdEncoding.DecodeString(cipherB64)
	require.NoError(t, err)
	assert.Len(t, ct, RSABits/8)

	got, err := codec.Decrypt(cipherB64, bundle.PrivateKeyB64)
	require.NoError(t, err)
	assert.Equal(t, "namaste-from-e2e", got)
}

func TestCodec_SizeLimit(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	// 190 bytes succeeds
	max := strings.Repeat("a", MaxPlaintextBytes)
	cipherB64, err := codec.Encrypt(max, bundle.PublicKeyB64)
	require.NoError(t, err)

	got, err := codec.Decrypt(cipherB64, bundle.PrivateKeyB64)
	require.NoError(t, err)
	assert.Equal(t, max, got)

	// 191 bytes fails before the cipher call
	_, err = codec.Encrypt(max+"a", bundle.PublicKeyB64)
	assert.ErrorIs(t, err, ErrPlaintextTooLarge)
}

// The bound is measured in UTF-8 bytes, not runes.
func TestCodec_SizeLimitCountsUTF8Bytes(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	// 64 four-byte runes = 256 bytes > 190
	wide := strings.Repeat("\U0001F510", 64)
	require.Less(t, len([]rune(wide)), MaxPlaintextBytes)
	_, err := codec.Encrypt(wide, bundle.PublicKeyB64)
	assert.ErrorIs(t, err, ErrPlaintextTooLarge)
}

func TestCodec_TamperDetection(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	cipherB64, err := codec.Encrypt("tamper target", bundle.PublicKeyB64)
	require.NoError(t, err)

	ct, err := base64.StdEncoding.DecodeString(cipherB64)
	require.NoError(t, err)

	for _, i := range []int{0, len(ct) / 2, len(ct) - 1} {
		mutated := make([]byte, len(ct))
		copy(mutated, ct)
		mutated[i] ^= 0x01

		_, err := codec.Decrypt(base64.StdEncoding.EncodeToString(mutated), bundle.PrivateKeyB64)
		assert.ErrorIs(t, err, ErrDecryptionFailed, "byte %d", i)
	}
}

func TestCodec_WrongKeyRejection(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)
	other := testBundle(t)

	cipherB64, err := codec.Encrypt("namaste-from-e2e", bundle.PublicKeyB64)
	require.NoError(t, err)

	_, err = codec.Decrypt(cipherB64, other.PrivateKeyB64)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestCodec_KeyLoading(t *testing.T) {
	bundle := testBundle(t)

	_, err := LoadPublicKey("not-base64!!!")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = LoadPublicKey(base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = LoadPrivateKey(base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	// Keys are not interchangeable between slots
	_, err = LoadPrivateKey(bundle.PublicKeyB64)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestCodec_DecryptBadBase64(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	_, err := codec.Decrypt("not-base64!!!", bundle.PrivateKeyB64)
	assert.ErrorIs(t, err, ErrInvalidBase64)
}

// OAEP is randomized: encrypting the same plaintext twice yields
// different ciphertexts.
func TestCodec_EncryptIsRandomized(t *testing.T) {
	codec := NewCodec(nil)
	bundle := testBundle(t)

	a, err := codec.Encrypt("same input", bundle.PublicKeyB64)
	require.NoError(t, err)
	b, err := codec.Encrypt("same input", bundle.PublicKeyB64)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
