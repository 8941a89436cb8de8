// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package token implements the JWT-style sign/verify codec: a three-part
// header.payload.signature token signed with RSA PKCS#1 v1.5 / SHA-256
// (RS256), built on github.com/golang-jwt/jwt/v5.
//
// The payload convention is two-mode: a message that parses as a JSON
// object becomes the claim set directly; anything else is wrapped verbatim
// as {"data": message}. Verification returns the original message either
// way. iat and exp are injected at signing only when the caller did not
// supply them, and exp is checked strictly after the signature verifies.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
)

// DefaultLifetime is the token lifetime injected when the caller did not
// supply an exp claim.
const DefaultLifetime = 3600 * time.Second

// Verification errors, per category. Format failures are distinct from
// signature failures; expiry is only reported for authentic tokens.
var (
	// ErrInvalidTokenFormat indicates a structurally malformed token
	// (wrong number of segments, bad base64url, non-JSON payload).
	ErrInvalidTokenFormat = errors.New("invalid token format")

	// ErrSignatureInvalid indicates the RS256 signature did not verify.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrTokenExpired indicates a valid signature with exp in the past.
	ErrTokenExpired = errors.New("token expired")
)

// Config configures a Codec.
type Config struct {
	// Lifetime is the injected token lifetime (default: DefaultLifetime).
	Lifetime time.Duration

	// Now is the clock used for iat/exp. Defaults to time.Now.
	// Overridable for tests.
	Now func() time.Time
}

// Codec signs and verifies tokens. It is stateless given the key material
// and safe for concurrent use.
type Codec struct {
	lifetime time.Duration
	now      func() time.Time
}

// NewCodec creates a Codec. A nil config uses defaults.
func NewCodec(cfg *Config) *Codec {
	c := &Codec{
		lifetime: DefaultLifetime,
		now:      time.Now,
	}
	if cfg != nil {
		if cfg.Lifetime > 0 {
			c.lifetime = cfg.Lifetime
		}
		if cfg.Now != nil {
			c.now = cfg.Now
		}
	}
	return c
}

// Sign builds and signs a token over message with the given PKCS#8
// private key. The claim set is the message's own fields when it parses
// as a JSON object, or {"data": message} otherwise; iat/exp are added
// only if absent so caller-supplied claims take precedence.
func (c *Codec) Sign(message, privateKeyB64 string) (string, error) {
	priv, err := asymmetric.LoadPrivateKey(privateKeyB64)
	if err != nil {
		return "", err
	}

	claims := buildClaims(message)

	now := c.now().Unix()
	if _, ok := claims["iat"]; !ok {
		claims["iat"] = now
	}
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = now + int64(c.lifetime.Seconds())
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token against the given SPKI public key and returns
// the originally signed message.
//
// Checks run in a fixed order: structure, then signature, then expiry.
// Unverified expiry data is never trusted.
func (c *Codec) Verify(tokenString, publicKeyB64 string) (string, error) {
	pub, err := asymmetric.LoadPublicKey(publicKeyB64)
	if err != nil {
		return "", err
	}

	if strings.Count(tokenString, ".") != 2 {
		return "", ErrInvalidTokenFormat
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return pub, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrInvalidTokenFormat
		case errors.Is(err, jwt.ErrTokenExpired):
			// golang-jwt verifies the signature before validating
			// claims, so expiry here implies an authentic token.
			return "", ErrTokenExpired
		default:
			return "", ErrSignatureInvalid
		}
	}

	// Wrapped-string signing path: return the data claim verbatim.
	if data, ok := claims["data"].(string); ok {
		return data, nil
	}

	// JSON-claims signing path: strip the injected claims and
	// re-serialize what the caller signed.
	delete(claims, "iat")
	delete(claims, "exp")
	out, err := json.Marshal(map[string]interface{}(claims))
	if err != nil {
		return "", fmt.Errorf("failed to serialize claims: %w", err)
	}
	return string(out), nil
}

// buildClaims decides the payload shape once, at the boundary: a JSON
// object becomes the claim set, everything else (plain strings, JSON
// scalars, JSON arrays) is wrapped under "data".
func buildClaims(message string) jwt.MapClaims {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(message), &obj); err == nil && obj != nil {
		return jwt.MapClaims(obj)
	}
	return jwt.MapClaims{"data": message}
}
