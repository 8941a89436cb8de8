// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package symmetric

import (
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	cryptorand "github.com/muthuishere/dual-crypt/pkg/crypto/rand"
)

// CipherPack is the split-field transport value produced by FastCodec:
// the IV and the ciphertext (with appended GCM tag) as separate base64
// strings.
type CipherPack struct {
	IVB64     string `json:"ivB64"`
	CipherB64 string `json:"cipherB64"`
}

// FastCodec is the raw-key AES-256-GCM codec. The 32-byte secret is used
// directly as the AES key with no derivation step; the salt is carried for
// API symmetry with Codec but is cryptographically inert.
//
// FastCodec output is NOT interoperable with Codec output.
type FastCodec struct {
	rng cryptorand.Resolver
}

// NewFastCodec creates a FastCodec backed by the given RNG.
// If rng is nil, the process-wide shared resolver is used.
func NewFastCodec(rng cryptorand.Resolver) *FastCodec {
	if rng == nil {
		rng = cryptorand.Default()
	}
	return &FastCodec{rng: rng}
}

// GenerateBundle produces a fresh AES-256 key and salt.
func (c *FastCodec) GenerateBundle() (*Bundle, error) {
	key, err := c.rng.Rand(SecretBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	salt, err := c.rng.Rand(SaltBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return &Bundle{
		SecretB64: base64.StdEncoding.EncodeToString(key),
		SaltB64:   base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Encrypt encrypts plaintext under the raw secret and returns the IV and
// ciphertext as separate base64 fields.
func (c *FastCodec) Encrypt(plaintext, secretB64, saltB64 string) (*CipherPack, error) {
	gcm, err := c.aead(secretB64)
	if err != nil {
		return nil, err
	}

	iv, err := c.rng.Rand(IVBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	ct := gcm.Seal(nil, iv, []byte(plaintext), nil)
	return &CipherPack{
		IVB64:     base64.StdEncoding.EncodeToString(iv),
		CipherB64: base64.StdEncoding.EncodeToString(ct),
	}, nil
}

// Decrypt reverses Encrypt. The salt parameter is accepted for API
// symmetry and ignored. Authenticity failures surface as
// ErrDecryptionFailed.
func (c *FastCodec) Decrypt(pack *CipherPack, secretB64, _ string) (string, error) {
	if pack == nil {
		return "", fmt.Errorf("%w: cipher pack is required", ErrInvalidBase64)
	}

	iv, err := base64.StdEncoding.DecodeString(pack.IVB64)
	if err != nil {
		return "", fmt.Errorf("%w: iv", ErrInvalidBase64)
	}
	if len(iv) != IVBytes {
		return "", ErrInvalidIV
	}
	ct, err := base64.StdEncoding.DecodeString(pack.CipherB64)
	if err != nil {
		return "", fmt.Errorf("%w: cipher", ErrInvalidBase64)
	}

	gcm, err := c.aead(secretB64)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, ct, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// aead loads the raw AES-256 key and builds the GCM AEAD.
func (c *FastCodec) aead(secretB64 string) (cipher.AEAD, error) {
	key, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("%w: secret", ErrInvalidBase64)
	}
	if len(key) != SecretBytes {
		return nil, ErrInvalidSecret
	}
	return newGCM(key)
}
