// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package symmetric implements the AES-256-GCM codecs shared between the
// dual-crypt server and its browser peer.
//
// Two codecs are provided, with two mutually incompatible wire formats:
//
//   - Codec derives the AES key with HKDF-SHA256 (RFC 5869) from a
//     secret+salt pair and packs IV and ciphertext into a single base64
//     transport value: base64( IV(12) || ciphertext || tag(16) ).
//   - FastCodec uses the 32-byte secret directly as the AES-256 key and
//     transports IV and ciphertext as separate base64 fields.
//
// A peer must use the matching codec; the two produce different ciphertexts
// for the same secret, salt, and plaintext.
package symmetric

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptorand "github.com/muthuishere/dual-crypt/pkg/crypto/rand"
)

const (
	// SecretBytes is the size of the symmetric secret (HKDF input key
	// material for Codec, raw AES-256 key for FastCodec).
	SecretBytes = 32

	// SaltBytes is the size of the bundle salt.
	SaltBytes = 16

	// IVBytes is the GCM IV size (96-bit, GCM standard).
	IVBytes = 12

	// aesKeyBytes is the derived AES-256 key size.
	aesKeyBytes = 32
)

// Bundle holds generated symmetric key material, base64 encoded for
// transport. It is created once, persisted by the caller, and never
// mutated.
type Bundle struct {
	SecretB64 string `json:"secretB64"`
	SaltB64   string `json:"saltB64"`
}

// Codec is the HKDF-mode AES-256-GCM codec. It is stateless and safe for
// concurrent use; each call receives its own key material and allocates a
// fresh IV.
type Codec struct {
	rng cryptorand.Resolver
}

// NewCodec creates a Codec backed by the given RNG.
// If rng is nil, the process-wide shared resolver is used.
func NewCodec(rng cryptorand.Resolver) *Codec {
	if rng == nil {
		rng = cryptorand.Default()
	}
	return &Codec{rng: rng}
}

// GenerateBundle produces a fresh 32-byte secret and 16-byte salt.
func (c *Codec) GenerateBundle() (*Bundle, error) {
	secret, err := c.rng.Rand(SecretBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	salt, err := c.rng.Rand(SaltBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return &Bundle{
		SecretB64: base64.StdEncoding.EncodeToString(secret),
		SaltB64:   base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Encrypt encrypts plaintext with a key derived from secret+salt and
// returns the packed transport value base64( IV || ciphertext || tag ).
// The IV is freshly random per call and never reused under the same key.
func (c *Codec) Encrypt(plaintext, secretB64, saltB64 string) (string, error) {
	gcm, err := c.aead(secretB64, saltB64)
	if err != nil {
		return "", err
	}

	iv, err := c.rng.Rand(IVBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	// Seal with the IV as destination prefix so the packed layout is
	// IV || ciphertext || tag in a single allocation.
	packed := gcm.Seal(iv, iv, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(packed), nil
}

// Decrypt reverses Encrypt. Tag mismatches from tampering, a wrong secret,
// or a wrong salt all surface as ErrDecryptionFailed.
func (c *Codec) Decrypt(dataB64, secretB64, saltB64 string) (string, error) {
	packed, err := base64.StdEncoding.DecodeString(dataB64)
	if err != nil {
		return "", fmt.Errorf("%w: data", ErrInvalidBase64)
	}
	if len(packed) <= IVBytes {
		return "", ErrCipherTooShort
	}

	gcm, err := c.aead(secretB64, saltB64)
	if err != nil {
		return "", err
	}

	iv := packed[:IVBytes]
	ct := packed[IVBytes:]

	plaintext, err := gcm.Open(nil, iv, ct, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// aead derives the AES-256 key via HKDF-SHA256 and builds the GCM AEAD.
func (c *Codec) aead(secretB64, saltB64 string) (cipher.AEAD, error) {
	ikm, salt, err := decodeBundle(secretB64, saltB64)
	if err != nil {
		return nil, err
	}

	key := make([]byte, aesKeyBytes)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, nil), key); err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}

	return newGCM(key)
}

// decodeBundle decodes and validates the secret and salt fields.
func decodeBundle(secretB64, saltB64 string) (secret, salt []byte, err error) {
	secret, err = base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: secret", ErrInvalidBase64)
	}
	if len(secret) != SecretBytes {
		return nil, nil, ErrInvalidSecret
	}
	salt, err = base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt", ErrInvalidBase64)
	}
	if len(salt) != SaltBytes {
		return nil, nil, ErrInvalidSalt
	}
	return secret, salt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
