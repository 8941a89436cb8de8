// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package symmetric

import "errors"

// Input validation errors. These are raised before any cryptographic
// primitive executes and may name the violated constraint.
var (
	// ErrInvalidSecret indicates the secret did not decode to 32 bytes.
	ErrInvalidSecret = errors.New("secret must be 32 bytes")

	// ErrInvalidSalt indicates the salt did not decode to 16 bytes.
	ErrInvalidSalt = errors.New("salt must be 16 bytes")

	// ErrInvalidBase64 indicates a field was not valid standard base64.
	ErrInvalidBase64 = errors.New("invalid base64 encoding")

	// ErrInvalidIV indicates a split-field IV did not decode to 12 bytes.
	ErrInvalidIV = errors.New("iv must be 12 bytes")

	// ErrCipherTooShort indicates packed ciphertext shorter than the IV.
	ErrCipherTooShort = errors.New("cipher too short")
)

// ErrDecryptionFailed is the single generic authenticity failure returned
// for any GCM tag mismatch (tampering, wrong key, wrong salt). The root
// cause is deliberately not distinguished to avoid oracle-style leaks.
var ErrDecryptionFailed = errors.New("decryption failed")
