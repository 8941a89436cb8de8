// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
)

func testKeys(t *testing.T) *asymmetric.Bundle {
	t.Helper()
	bundle, err := asymmetric.NewCodec(nil).GenerateBundle()
	require.NoError(t, err)
	return bundle
}

func TestCodec_SignProducesThreeSegments(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Header is the fixed {alg, typ} shape, base64url without padding
	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	var header map[string]string
	require.NoError(t, json.Unmarshal(headerJSON, &header))
	assert.Equal(t, "RS256", header["alg"])
	assert.Equal(t, "JWT", header["typ"])
}

func TestCodec_StringRoundTrip(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	got, err := codec.Verify(tok, keys.PublicKeyB64)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestCodec_JSONClaimsRoundTrip(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign(`{"user":"john","role":"admin"}`, keys.PrivateKeyB64)
	require.NoError(t, err)

	got, err := codec.Verify(tok, keys.PublicKeyB64)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &claims))
	assert.Equal(t, "john", claims["user"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotContains(t, claims, "iat")
	assert.NotContains(t, claims, "exp")
}

// Non-object JSON (scalars, arrays, null) takes the wrapped-string path.
func TestCodec_NonObjectJSONIsWrapped(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	for _, msg := range []string{`"just a string"`, `42`, `[1,2,3]`, `null`} {
		tok, err := codec.Sign(msg, keys.PrivateKeyB64)
		require.NoError(t, err)

		got, err := codec.Verify(tok, keys.PublicKeyB64)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}
}

func TestCodec_InjectsIatExpWhenAbsent(t *testing.T) {
	keys := testKeys(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec(&Config{Now: func() time.Time { return fixed }})

	tok, err := codec.Sign(`{"user":"john"}`, keys.PrivateKeyB64)
	require.NoError(t, err)

	payload := decodePayload(t, tok)
	assert.EqualValues(t, fixed.Unix(), payload["iat"])
	assert.EqualValues(t, fixed.Unix()+3600, payload["exp"])
}

func TestCodec_CallerClaimsTakePrecedence(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	future := time.Now().Add(48 * time.Hour).Unix()
	msg, err := json.Marshal(map[string]interface{}{"user": "john", "exp": future, "iat": 1})
	require.NoError(t, err)

	tok, err := codec.Sign(string(msg), keys.PrivateKeyB64)
	require.NoError(t, err)

	payload := decodePayload(t, tok)
	assert.EqualValues(t, future, payload["exp"])
	assert.EqualValues(t, 1, payload["iat"])
}

func TestCodec_RejectsMalformedTokens(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	for _, tok := range []string{
		"",
		"one",
		"one.two",
		"one.two.three.four",
	} {
		_, err := codec.Verify(tok, keys.PublicKeyB64)
		assert.ErrorIs(t, err, ErrInvalidTokenFormat, "token %q", tok)
	}

	// Three segments of garbage is a format failure, not a signature one
	_, err := codec.Verify("!!!.!!!.!!!", keys.PublicKeyB64)
	assert.ErrorIs(t, err, ErrInvalidTokenFormat)
}

func TestCodec_SignatureTamperDetection(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	mutated := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(mutated, keys.PublicKeyB64)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_PayloadTamperDetection(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign(`{"user":"john","role":"user"}`, keys.PrivateKeyB64)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"user":"john","role":"admin"}`))
	mutated := parts[0] + "." + forged + "." + parts[2]

	_, err = codec.Verify(mutated, keys.PublicKeyB64)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_WrongKeyRejection(t *testing.T) {
	keys := testKeys(t)
	other := testKeys(t)
	codec := NewCodec(nil)

	tok, err := codec.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	_, err = codec.Verify(tok, other.PublicKeyB64)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_ExpiredToken(t *testing.T) {
	keys := testKeys(t)

	past := time.Now().Add(-2 * time.Hour)
	signer := NewCodec(&Config{Now: func() time.Time { return past }})
	verifier := NewCodec(nil)

	tok, err := signer.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	_, err = verifier.Verify(tok, keys.PublicKeyB64)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// Signature failure takes precedence over expiry: an expired token with a
// broken signature reports the signature error, never the expiry one.
func TestCodec_SignatureCheckedBeforeExpiry(t *testing.T) {
	keys := testKeys(t)
	other := testKeys(t)

	past := time.Now().Add(-2 * time.Hour)
	signer := NewCodec(&Config{Now: func() time.Time { return past }})
	verifier := NewCodec(nil)

	tok, err := signer.Sign("hello world", keys.PrivateKeyB64)
	require.NoError(t, err)

	_, err = verifier.Verify(tok, other.PublicKeyB64)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_CustomLifetime(t *testing.T) {
	keys := testKeys(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec(&Config{Lifetime: 30 * time.Second, Now: func() time.Time { return fixed }})

	tok, err := codec.Sign("short lived", keys.PrivateKeyB64)
	require.NoError(t, err)

	payload := decodePayload(t, tok)
	assert.EqualValues(t, fixed.Unix()+30, payload["exp"])
}

func TestCodec_InvalidKeys(t *testing.T) {
	keys := testKeys(t)
	codec := NewCodec(nil)

	_, err := codec.Sign("hello", "not-a-key")
	assert.ErrorIs(t, err, asymmetric.ErrInvalidPrivateKey)

	tok, err := codec.Sign("hello", keys.PrivateKeyB64)
	require.NoError(t, err)

	_, err = codec.Verify(tok, "not-a-key")
	assert.ErrorIs(t, err, asymmetric.ErrInvalidPublicKey)
}

func decodePayload(t *testing.T, tok string) map[string]interface{} {
	t.Helper()
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}
