// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package validation provides centralized request input validation for
// the dual-crypt API. Handlers validate fields here before any codec is
// invoked, so malformed input never reaches a cryptographic primitive.
package validation

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxFieldBytes bounds any single base64 field to keep hostile requests
// from forcing large decodes. RSA keys are the largest legitimate values
// (~1.7KB); packed symmetric ciphertext scales with the plaintext.
const maxFieldBytes = 1 << 20

// RequireNonBlank validates that a required field is present and not
// whitespace-only.
func RequireNonBlank(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// ValidateBase64 validates that a field is standard base64 within the
// size bound. Returns the decoded length for callers that also enforce
// exact sizes.
func ValidateBase64(name, value string) (int, error) {
	if err := RequireNonBlank(name, value); err != nil {
		return 0, err
	}
	if len(value) > maxFieldBytes {
		return 0, fmt.Errorf("%s exceeds maximum field size", name)
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not valid base64", name)
	}
	return len(decoded), nil
}

// ValidateBase64Exact validates a base64 field whose decoded value must
// be exactly n bytes.
func ValidateBase64Exact(name, value string, n int) error {
	decoded, err := ValidateBase64(name, value)
	if err != nil {
		return err
	}
	if decoded != n {
		return fmt.Errorf("%s must decode to %d bytes", name, n)
	}
	return nil
}

// ValidatePlaintext validates a plaintext field: present, valid UTF-8,
// and within maxBytes when maxBytes > 0.
func ValidatePlaintext(name, value string, maxBytes int) error {
	if err := RequireNonBlank(name, value); err != nil {
		return err
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", name)
	}
	if maxBytes > 0 && len(value) > maxBytes {
		return fmt.Errorf("%s exceeds %d bytes", name, maxBytes)
	}
	return nil
}
