// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rest

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/symmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/token"
)

func TestMapErrorToStatusCode(t *testing.T) {
	callerFaults := []error{
		ErrInvalidRequest,
		symmetric.ErrInvalidSecret,
		symmetric.ErrInvalidSalt,
		symmetric.ErrInvalidBase64,
		symmetric.ErrInvalidIV,
		symmetric.ErrCipherTooShort,
		symmetric.ErrDecryptionFailed,
		asymmetric.ErrPlaintextTooLarge,
		asymmetric.ErrInvalidPublicKey,
		asymmetric.ErrInvalidPrivateKey,
		asymmetric.ErrInvalidBase64,
		asymmetric.ErrDecryptionFailed,
		token.ErrInvalidTokenFormat,
		token.ErrSignatureInvalid,
		token.ErrTokenExpired,
	}
	for _, err := range callerFaults {
		assert.Equal(t, http.StatusBadRequest, mapErrorToStatusCode(err), err.Error())
	}

	assert.Equal(t, http.StatusInternalServerError,
		mapErrorToStatusCode(errors.New("rng unavailable")))
}
