// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rest

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// SymmetricGenerateResponse carries generated symmetric key material.
type SymmetricGenerateResponse struct {
	SecretB64 string `json:"secretB64"`
	SaltB64   string `json:"saltB64"`
}

// SymmetricEncryptRequest is the packed-codec encryption request.
type SymmetricEncryptRequest struct {
	Plaintext string `json:"plaintext"`
	SecretB64 string `json:"secretB64"`
	SaltB64   string `json:"saltB64"`
}

// SymmetricEncryptResponse carries the packed transport value
// base64( IV || ciphertext || tag ).
type SymmetricEncryptResponse struct {
	DataB64 string `json:"dataB64"`
}

// SymmetricDecryptRequest is the packed-codec decryption request.
type SymmetricDecryptRequest struct {
	DataB64   string `json:"dataB64"`
	SecretB64 string `json:"secretB64"`
	SaltB64   string `json:"saltB64"`
}

// FastEncryptResponse carries the split-field transport value of the
// raw-key codec.
type FastEncryptResponse struct {
	IVB64     string `json:"ivB64"`
	CipherB64 string `json:"cipherB64"`
}

// FastDecryptRequest is the split-field decryption request.
type FastDecryptRequest struct {
	IVB64     string `json:"ivB64"`
	CipherB64 string `json:"cipherB64"`
	SecretB64 string `json:"secretB64"`
	SaltB64   string `json:"saltB64"`
}

// AsymmetricGenerateResponse carries a generated RSA key pair.
type AsymmetricGenerateResponse struct {
	PublicKeyB64  string `json:"publicKeyB64"`
	PrivateKeyB64 string `json:"privateKeyB64"`
	SaltB64       string `json:"saltB64"`
}

// AsymmetricEncryptRequest is the RSA-OAEP encryption request.
type AsymmetricEncryptRequest struct {
	Plaintext    string `json:"plaintext"`
	PublicKeyB64 string `json:"publicKeyB64"`
}

// AsymmetricDecryptRequest is the RSA-OAEP decryption request.
type AsymmetricDecryptRequest struct {
	CipherB64     string `json:"cipherB64"`
	PrivateKeyB64 string `json:"privateKeyB64"`
}

// SignRequest is the token signing request.
type SignRequest struct {
	Data          string `json:"data"`
	PrivateKeyB64 string `json:"privateKeyB64"`
}

// VerifyRequest is the token verification request.
type VerifyRequest struct {
	Token        string `json:"token"`
	PublicKeyB64 string `json:"publicKeyB64"`
}

// VerifyResponse carries the originally signed data of a valid token.
type VerifyResponse struct {
	Data string `json:"data"`
}

// TextResponse is the generic single-value response used by decrypt,
// encrypt (asymmetric), and sign operations.
type TextResponse struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
