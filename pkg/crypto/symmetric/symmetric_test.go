// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package symmetric

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_GenerateBundle(t *testing.T) {
	codec := NewCodec(nil)

	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	secret, err := base64.StdEncoding.DecodeString(bundle.SecretB64)
	require.NoError(t, err)
	assert.Len(t, secret, SecretBytes)

	salt, err := base64.StdEncoding.DecodeString(bundle.SaltB64)
	require.NoError(t, err)
	assert.Len(t, salt, SaltBytes)

	// Bundles are independent
	bundle2, err := codec.GenerateBundle()
	require.NoError(t, err)
	assert.NotEqual(t, bundle.SecretB64, bundle2.SecretB64)
	assert.NotEqual(t, bundle.SaltB64, bundle2.SaltB64)
}

func TestCodec_EncryptDecryptRoundTrip(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	plaintexts := []string{
		"vanakkam-aes-gcm",
		"",
		"a",
		strings.Repeat("x", 4096),
		"unicode: héllo wörld 日本語 🔐",
	}

	for _, pt := range plaintexts {
		data, err := codec.Encrypt(pt, bundle.SecretB64, bundle.SaltB64)
		require.NoError(t, err)

		got, err := codec.Decrypt(data, bundle.SecretB64, bundle.SaltB64)
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
}

func TestCodec_PackedLayout(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	plaintext := "vanakkam-aes-gcm"
	data, err := codec.Encrypt(plaintext, bundle.SecretB64, bundle.SaltB64)
	require.NoError(t, err)

	packed, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)

	// IV(12) || ciphertext || tag(16)
	assert.Len(t, packed, IVBytes+len(plaintext)+16)
}

func TestCodec_FreshIVPerCall(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	a, err := codec.Encrypt("same plaintext", bundle.SecretB64, bundle.SaltB64)
	require.NoError(t, err)
	b, err := codec.Encrypt("same plaintext", bundle.SecretB64, bundle.SaltB64)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	pa, _ := base64.StdEncoding.DecodeString(a)
	pb, _ := base64.StdEncoding.DecodeString(b)
	assert.NotEqual(t, pa[:IVBytes], pb[:IVBytes])
}

func TestCodec_TamperDetection(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	data, err := codec.Encrypt("vanakkam-aes-gcm", bundle.SecretB64, bundle.SaltB64)
	require.NoError(t, err)

	packed, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)

	// Flipping any single byte (IV, ciphertext, or tag region) must fail
	for i := 0; i < len(packed); i++ {
		mutated := make([]byte, len(packed))
		copy(mutated, packed)
		mutated[i] ^= 0x01

		_, err := codec.Decrypt(base64.StdEncoding.EncodeToString(mutated),
			bundle.SecretB64, bundle.SaltB64)
		assert.ErrorIs(t, err, ErrDecryptionFailed, "byte %d", i)
	}
}

func TestCodec_WrongKeyRejection(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)
	other, err := codec.GenerateBundle()
	require.NoError(t, err)

	data, err := codec.Encrypt("secret message", bundle.SecretB64, bundle.SaltB64)
	require.NoError(t, err)

	_, err = codec.Decrypt(data, other.SecretB64, bundle.SaltB64)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	// Wrong salt derives a different key and must fail identically
	_, err = codec.Decrypt(data, bundle.SecretB64, other.SaltB64)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestCodec_CipherTooShort(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	// Exactly IVBytes is still too short; the packed value must contain
	// at least one ciphertext/tag byte beyond the IV.
	short := base64.StdEncoding.EncodeToString(make([]byte, IVBytes))
	_, err = codec.Decrypt(short, bundle.SecretB64, bundle.SaltB64)
	assert.ErrorIs(t, err, ErrCipherTooShort)

	empty := base64.StdEncoding.EncodeToString(nil)
	_, err = codec.Decrypt(empty, bundle.SecretB64, bundle.SaltB64)
	assert.ErrorIs(t, err, ErrCipherTooShort)
}

func TestCodec_InputValidation(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	shortSecret := base64.StdEncoding.EncodeToString(make([]byte, 16))
	_, err = codec.Encrypt("hi", shortSecret, bundle.SaltB64)
	assert.ErrorIs(t, err, ErrInvalidSecret)

	shortSalt := base64.StdEncoding.EncodeToString(make([]byte, 8))
	_, err = codec.Encrypt("hi", bundle.SecretB64, shortSalt)
	assert.ErrorIs(t, err, ErrInvalidSalt)

	_, err = codec.Encrypt("hi", "not-base64!!!", bundle.SaltB64)
	assert.ErrorIs(t, err, ErrInvalidBase64)

	_, err = codec.Decrypt("not-base64!!!", bundle.SecretB64, bundle.SaltB64)
	assert.ErrorIs(t, err, ErrInvalidBase64)
}

// TestCodec_HKDFSchedule pins the key derivation to RFC 5869: extract
// PRK = HMAC-SHA256(salt, secret), expand one round with empty info. A
// ciphertext produced under the derived key must decrypt with the codec.
func TestCodec_HKDFSchedule(t *testing.T) {
	secret := make([]byte, SecretBytes)
	salt := make([]byte, SaltBytes)
	for i := range secret {
		secret[i] = byte(i)
	}
	for i := range salt {
		salt[i] = byte(0xA0 + i)
	}

	// Manual RFC 5869 extract-then-expand, single round
	extract := hmac.New(sha256.New, salt)
	extract.Write(secret)
	prk := extract.Sum(nil)

	expand := hmac.New(sha256.New, prk)
	expand.Write([]byte{0x01}) // T(1) = HMAC(PRK, info || 0x01), empty info
	expected := expand.Sum(nil)

	// Encrypt via the codec, then decrypt manually with the expected key;
	// success proves the codec uses exactly this schedule.
	codec := NewCodec(nil)
	data, err := codec.Encrypt("hkdf-check", base64.StdEncoding.EncodeToString(secret),
		base64.StdEncoding.EncodeToString(salt))
	require.NoError(t, err)

	packed, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)

	gcm, err := newGCM(expected)
	require.NoError(t, err)
	pt, err := gcm.Open(nil, packed[:IVBytes], packed[IVBytes:], nil)
	require.NoError(t, err)
	assert.Equal(t, "hkdf-check", string(pt))
}

func TestCodec_ConcurrentUse(t *testing.T) {
	codec := NewCodec(nil)
	bundle, err := codec.GenerateBundle()
	require.NoError(t, err)

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			data, err := codec.Encrypt("concurrent", bundle.SecretB64, bundle.SaltB64)
			if err != nil {
				done <- err
				return
			}
			_, err = codec.Decrypt(data, bundle.SecretB64, bundle.SaltB64)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}
