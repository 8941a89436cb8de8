// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/symmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/token"
)

// Common errors
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalError  = errors.New("internal server error")
)

// writeError writes an error response to the client.
func writeError(w http.ResponseWriter, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  statusCode,
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		log.Printf("Failed to encode error response: %v", encErr)
	}
}

// writeErrorWithMessage writes an error response with a custom message.
func writeErrorWithMessage(w http.ResponseWriter, err error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:   err.Error(),
		Message: message,
		Code:    statusCode,
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		log.Printf("Failed to encode error response: %v", encErr)
	}
}

// mapErrorToStatusCode maps codec errors to HTTP status codes.
// Validation, format, authenticity, and expiry failures are all caller
// faults (4xx); anything unrecognized is an infrastructure fault (5xx).
func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, symmetric.ErrInvalidSecret),
		errors.Is(err, symmetric.ErrInvalidSalt),
		errors.Is(err, symmetric.ErrInvalidBase64),
		errors.Is(err, symmetric.ErrInvalidIV),
		errors.Is(err, symmetric.ErrCipherTooShort),
		errors.Is(err, symmetric.ErrDecryptionFailed),
		errors.Is(err, asymmetric.ErrPlaintextTooLarge),
		errors.Is(err, asymmetric.ErrInvalidPublicKey),
		errors.Is(err, asymmetric.ErrInvalidPrivateKey),
		errors.Is(err, asymmetric.ErrInvalidBase64),
		errors.Is(err, asymmetric.ErrDecryptionFailed),
		errors.Is(err, token.ErrInvalidTokenFormat),
		errors.Is(err, token.ErrSignatureInvalid),
		errors.Is(err, token.ErrTokenExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError maps the error to a status code and writes the response.
func handleError(w http.ResponseWriter, err error) {
	writeError(w, err, mapErrorToStatusCode(err))
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
