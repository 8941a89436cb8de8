// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/symmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/token"
	"github.com/muthuishere/dual-crypt/pkg/health"
	"github.com/muthuishere/dual-crypt/pkg/metrics"
	"github.com/muthuishere/dual-crypt/pkg/validation"
)

// HandlerContext holds dependencies for REST handlers.
type HandlerContext struct {
	// Version is the API version
	Version string

	// Symmetric is the HKDF-mode packed codec
	Symmetric *symmetric.Codec

	// SymmetricFast is the raw-key split-field codec
	SymmetricFast *symmetric.FastCodec

	// Asymmetric is the RSA-OAEP codec
	Asymmetric *asymmetric.Codec

	// Token is the RS256 sign/verify codec
	Token *token.Codec

	// HealthChecker manages health check probes
	HealthChecker HealthChecker
}

// HealthChecker defines the interface for health checking.
type HealthChecker interface {
	Live(ctx context.Context) health.CheckResult
	Ready(ctx context.Context) []health.CheckResult
	Startup(ctx context.Context) health.CheckResult
}

// NewHandlerContext creates a new handler context over the given codecs.
func NewHandlerContext(version string, sym *symmetric.Codec, fast *symmetric.FastCodec,
	asym *asymmetric.Codec, tok *token.Codec) *HandlerContext {
	return &HandlerContext{
		Version:       version,
		Symmetric:     sym,
		SymmetricFast: fast,
		Asymmetric:    asym,
		Token:         tok,
	}
}

// SetHealthChecker sets the health checker for the handler context.
func (h *HandlerContext) SetHealthChecker(checker HealthChecker) {
	h.HealthChecker = checker
}

// HealthHandler handles GET /api/health requests.
func (h *HandlerContext) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Version: h.Version,
	}
	writeJSON(w, resp, http.StatusOK)
}

// observe records operation metrics for a completed codec call.
func observe(operation, codec string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.RecordOperation(operation, codec, status)
	metrics.ObserveOperation(operation, codec, time.Since(start).Seconds())
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrInvalidRequest
	}
	return nil
}

// SymmetricGenerateHandler handles GET /api/symmetric/generate requests.
func (h *HandlerContext) SymmetricGenerateHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	bundle, err := h.Symmetric.GenerateBundle()
	observe(metrics.OpGenerate, metrics.CodecSymmetric, start, err)
	if err != nil {
		writeError(w, ErrInternalError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, SymmetricGenerateResponse{SecretB64: bundle.SecretB64, SaltB64: bundle.SaltB64}, http.StatusOK)
}

// SymmetricEncryptHandler handles POST /api/symmetric/encrypt requests.
func (h *HandlerContext) SymmetricEncryptHandler(w http.ResponseWriter, r *http.Request) {
	var req SymmetricEncryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validateSymmetricKeyMaterial(req.SecretB64, req.SaltB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePlaintext("plaintext", req.Plaintext, 0); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	dataB64, err := h.Symmetric.Encrypt(req.Plaintext, req.SecretB64, req.SaltB64)
	observe(metrics.OpEncrypt, metrics.CodecSymmetric, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, SymmetricEncryptResponse{DataB64: dataB64}, http.StatusOK)
}

// SymmetricDecryptHandler handles POST /api/symmetric/decrypt requests.
func (h *HandlerContext) SymmetricDecryptHandler(w http.ResponseWriter, r *http.Request) {
	var req SymmetricDecryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validateSymmetricKeyMaterial(req.SecretB64, req.SaltB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("dataB64", req.DataB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	text, err := h.Symmetric.Decrypt(req.DataB64, req.SecretB64, req.SaltB64)
	observe(metrics.OpDecrypt, metrics.CodecSymmetric, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, TextResponse{Text: text}, http.StatusOK)
}

// FastGenerateHandler handles GET /api/symmetric-fast/generate requests.
func (h *HandlerContext) FastGenerateHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	bundle, err := h.SymmetricFast.GenerateBundle()
	observe(metrics.OpGenerate, metrics.CodecSymmetricFast, start, err)
	if err != nil {
		writeError(w, ErrInternalError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, SymmetricGenerateResponse{SecretB64: bundle.SecretB64, SaltB64: bundle.SaltB64}, http.StatusOK)
}

// FastEncryptHandler handles POST /api/symmetric-fast/encrypt requests.
func (h *HandlerContext) FastEncryptHandler(w http.ResponseWriter, r *http.Request) {
	var req SymmetricEncryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validateSymmetricKeyMaterial(req.SecretB64, req.SaltB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePlaintext("plaintext", req.Plaintext, 0); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	pack, err := h.SymmetricFast.Encrypt(req.Plaintext, req.SecretB64, req.SaltB64)
	observe(metrics.OpEncrypt, metrics.CodecSymmetricFast, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, FastEncryptResponse{IVB64: pack.IVB64, CipherB64: pack.CipherB64}, http.StatusOK)
}

// FastDecryptHandler handles POST /api/symmetric-fast/decrypt requests.
func (h *HandlerContext) FastDecryptHandler(w http.ResponseWriter, r *http.Request) {
	var req FastDecryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validateSymmetricKeyMaterial(req.SecretB64, req.SaltB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.ValidateBase64Exact("ivB64", req.IVB64, symmetric.IVBytes); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("cipherB64", req.CipherB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	text, err := h.SymmetricFast.Decrypt(&symmetric.CipherPack{IVB64: req.IVB64, CipherB64: req.CipherB64},
		req.SecretB64, req.SaltB64)
	observe(metrics.OpDecrypt, metrics.CodecSymmetricFast, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, TextResponse{Text: text}, http.StatusOK)
}

// AsymmetricGenerateHandler handles GET /api/asymmetric/generate requests.
func (h *HandlerContext) AsymmetricGenerateHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	bundle, err := h.Asymmetric.GenerateBundle()
	observe(metrics.OpGenerate, metrics.CodecAsymmetric, start, err)
	if err != nil {
		writeError(w, ErrInternalError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, AsymmetricGenerateResponse{
		PublicKeyB64:  bundle.PublicKeyB64,
		PrivateKeyB64: bundle.PrivateKeyB64,
		SaltB64:       bundle.SaltB64,
	}, http.StatusOK)
}

// AsymmetricEncryptHandler handles POST /api/asymmetric/encrypt requests.
func (h *HandlerContext) AsymmetricEncryptHandler(w http.ResponseWriter, r *http.Request) {
	var req AsymmetricEncryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePlaintext("plaintext", req.Plaintext, 0); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("publicKeyB64", req.PublicKeyB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	cipherB64, err := h.Asymmetric.Encrypt(req.Plaintext, req.PublicKeyB64)
	observe(metrics.OpEncrypt, metrics.CodecAsymmetric, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, TextResponse{Text: cipherB64}, http.StatusOK)
}

// AsymmetricDecryptHandler handles POST /api/asymmetric/decrypt requests.
func (h *HandlerContext) AsymmetricDecryptHandler(w http.ResponseWriter, r *http.Request) {
	var req AsymmetricDecryptRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("cipherB64", req.CipherB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("privateKeyB64", req.PrivateKeyB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	text, err := h.Asymmetric.Decrypt(req.CipherB64, req.PrivateKeyB64)
	observe(metrics.OpDecrypt, metrics.CodecAsymmetric, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, TextResponse{Text: text}, http.StatusOK)
}

// SignHandler handles POST /api/asymmetric/sign requests.
func (h *HandlerContext) SignHandler(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.RequireNonBlank("data", req.Data); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("privateKeyB64", req.PrivateKeyB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	tok, err := h.Token.Sign(req.Data, req.PrivateKeyB64)
	observe(metrics.OpSign, metrics.CodecToken, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, TextResponse{Text: tok}, http.StatusOK)
}

// VerifyHandler handles POST /api/asymmetric/verify requests.
func (h *HandlerContext) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := validation.RequireNonBlank("token", req.Token); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateBase64("publicKeyB64", req.PublicKeyB64); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	data, err := h.Token.Verify(req.Token, req.PublicKeyB64)
	observe(metrics.OpVerify, metrics.CodecToken, start, err)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, VerifyResponse{Data: data}, http.StatusOK)
}

// validateSymmetricKeyMaterial checks the secret and salt fields shared
// by all symmetric requests.
func validateSymmetricKeyMaterial(secretB64, saltB64 string) error {
	if err := validation.ValidateBase64Exact("secretB64", secretB64, symmetric.SecretBytes); err != nil {
		return err
	}
	return validation.ValidateBase64Exact("saltB64", saltB64, symmetric.SaltBytes)
}
