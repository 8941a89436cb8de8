// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package rand provides the random number generation used for all key
// material, salts, and IVs in dual-crypt.
//
// Every generator in this module draws from an OS-backed CSPRNG via a
// Resolver. A single process-wide Resolver is shared by all callers;
// crypto/rand is safe for concurrent use, so no additional synchronization
// is required.
//
// Resolver implements io.Reader, making it a drop-in replacement for
// crypto/rand.Reader with standard library functions such as
// rsa.GenerateKey.
package rand

import (
	"crypto/rand"
	"fmt"
)

// Resolver is the interface for generating random bytes.
// Applications should create a Resolver at startup and reuse it.
type Resolver interface {
	// Rand returns n random bytes.
	// Returns an error if the RNG is unavailable or fails.
	Rand(n int) ([]byte, error)

	// Read implements io.Reader for compatibility with crypto/rand.Reader.
	Read(p []byte) (n int, err error)

	// Available returns true if the RNG source is available and ready.
	Available() bool

	// Close closes the resolver and releases any resources.
	Close() error
}

// SoftwareResolver uses crypto/rand from the Go standard library.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

// NewResolver creates a new software RNG resolver.
func NewResolver() Resolver {
	return &SoftwareResolver{}
}

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid random byte count: %d", n)
	}
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

// Read implements io.Reader for compatibility with crypto/rand.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Available() bool {
	return true // crypto/rand always available
}

func (s *SoftwareResolver) Close() error {
	return nil // Nothing to close
}

// defaultResolver is the process-wide shared resolver.
var defaultResolver = NewResolver()

// Default returns the process-wide shared resolver.
func Default() Resolver {
	return defaultResolver
}
