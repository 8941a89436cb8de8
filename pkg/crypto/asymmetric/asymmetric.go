// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package asymmetric implements the RSA-2048 OAEP(SHA-256) codec shared
// between the dual-crypt server and its browser peer.
//
// Keys cross the boundary as standard base64 of their DER encodings:
// X.509/SubjectPublicKeyInfo for public keys, PKCS#8 for private keys.
package asymmetric

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"

	cryptorand "github.com/muthuishere/dual-crypt/pkg/crypto/rand"
)

const (
	// RSABits is the RSA modulus size.
	RSABits = 2048

	// SaltBytes is the bundle salt size. The salt drives nothing
	// cryptographically; it is carried for API symmetry with the
	// symmetric bundle shape.
	SaltBytes = 16

	// MaxPlaintextBytes is the OAEP plaintext bound for RSA-2048 with
	// SHA-256: keySize − 2·hashSize − 2 = 256 − 64 − 2 = 190.
	MaxPlaintextBytes = RSABits/8 - 2*sha256.Size - 2
)

// Input validation and key handling errors.
var (
	// ErrPlaintextTooLarge indicates the UTF-8 plaintext exceeds the
	// OAEP bound. Raised before the cipher call is attempted.
	ErrPlaintextTooLarge = fmt.Errorf("RSA-OAEP plaintext exceeds %d bytes", MaxPlaintextBytes)

	// ErrInvalidPublicKey indicates the public key was not valid base64
	// of an RSA SPKI DER encoding.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidPrivateKey indicates the private key was not valid
	// base64 of an RSA PKCS#8 DER encoding.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidBase64 indicates the ciphertext was not valid base64.
	ErrInvalidBase64 = errors.New("invalid base64 encoding")
)

// ErrDecryptionFailed is the single generic authenticity failure returned
// for any OAEP padding failure (wrong key, corrupted ciphertext).
var ErrDecryptionFailed = errors.New("decryption failed")

// Bundle holds a generated RSA key pair plus salt, base64 encoded for
// transport. The public key is safe to distribute; the private key must
// never leave the holding party.
type Bundle struct {
	PublicKeyB64  string `json:"publicKeyB64"`
	PrivateKeyB64 string `json:"privateKeyB64"`
	SaltB64       string `json:"saltB64"`
}

// Codec is the RSA-2048 OAEP(SHA-256) codec. It is stateless and safe for
// concurrent use.
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

// GenerateBundle generates an RSA-2048 key pair and a 16-byte salt.
func (c *Codec) GenerateBundle() (*Bundle, error) {
	key, err := rsa.GenerateKey(c.rng, RSABits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}
	salt, err := c.rng.Rand(SaltBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &Bundle{
		PublicKeyB64:  base64.StdEncoding.EncodeToString(pubDER),
		PrivateKeyB64: base64.StdEncoding.EncodeToString(privDER),
		SaltB64:       base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Encrypt encrypts plaintext with RSA-OAEP (SHA-256 hash, SHA-256 MGF1,
// empty label) under the given public key. Plaintexts longer than
// MaxPlaintextBytes are rejected before the cipher call.
func (c *Codec) Encrypt(plaintext, publicKeyB64 string) (string, error) {
	msg := []byte(plaintext)
	if len(msg) > MaxPlaintextBytes {
		return "", ErrPlaintextTooLarge
	}

	pub, err := LoadPublicKey(publicKeyB64)
	if err != nil {
		return "", err
	}

	ct, err := rsa.EncryptOAEP(sha256.New(), c.rng, pub, msg, nil)
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Padding failures from a wrong key or a
// corrupted ciphertext all surface as ErrDecryptionFailed.
func (c *Codec) Decrypt(cipherB64, privateKeyB64 string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(cipherB64)
	if err != nil {
		return "", fmt.Errorf("%w: cipher", ErrInvalidBase64)
	}

	priv, err := LoadPrivateKey(privateKeyB64)
	if err != nil {
		return "", err
	}

	pt, err := rsa.DecryptOAEP(sha256.New(), nil, priv, ct, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(pt), nil
}

// LoadPublicKey decodes a base64 X.509/SPKI DER RSA public key.
func LoadPublicKey(b64 string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	return pub, nil
}

// LoadPrivateKey decodes a base64 PKCS#8 DER RSA private key.
func LoadPrivateKey(b64 string) (*rsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrInvalidPrivateKey
	}
	return priv, nil
}
