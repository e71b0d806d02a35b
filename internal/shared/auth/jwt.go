// Package auth signs and verifies the HS256 bearer tokens the API accepts.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Claims is the identity carried by a token.
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Exp   int64  `json:"exp,omitempty"`
	Iat   int64  `json:"iat,omitempty"`
	Nbf   int64  `json:"nbf,omitempty"`
}

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpired       = fmt.Errorf("%w: expired", ErrInvalidToken)
)

const (
	// DefaultTTL applies when signed claims carry no expiry.
	DefaultTTL = 24 * time.Hour
	// Leeway tolerates clock drift between issuer and API.
	Leeway = 30 * time.Second
)

const hs256Header = `{"alg":"HS256","typ":"JWT"}`

var now = func() time.Time { return time.Now().UTC() }

// SignJWT signs claims with HS256, filling iat and exp when unset.
func SignJWT(secret []byte, claims Claims) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return "", errors.New("jwt: sub is required")
	}

	issued := now().Unix()
	if claims.Iat == 0 {
		claims.Iat = issued
	}
	if claims.Exp == 0 {
		claims.Exp = issued + int64(DefaultTTL/time.Second)
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("jwt: encode claims: %w", err)
	}
	unsigned := encodeSegment([]byte(hs256Header)) + "." + encodeSegment(payload)
	return unsigned + "." + signature(unsigned, secret), nil
}

// VerifyJWT checks signature, algorithm and validity window and returns the
// claims. Every rejection wraps ErrInvalidToken.
func VerifyJWT(secret []byte, token string) (Claims, error) {
	if len(secret) == 0 {
		return Claims{}, ErrMissingSecret
	}
	header, payload, sig, ok := splitToken(token)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var h struct {
		Alg string `json:"alg"`
	}
	if err := decodeSegment(header, &h); err != nil || h.Alg != "HS256" {
		return Claims{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(signature(header+"."+payload, secret))) {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := decodeSegment(payload, &claims); err != nil || claims.Sub == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, checkWindow(claims, now())
}

func checkWindow(claims Claims, at time.Time) error {
	leeway := int64(Leeway / time.Second)
	ts := at.Unix()
	if claims.Exp > 0 && ts > claims.Exp+leeway {
		return ErrExpired
	}
	if claims.Nbf > 0 && ts+leeway < claims.Nbf {
		return ErrInvalidToken
	}
	return nil
}

func splitToken(token string) (header, payload, sig string, ok bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeSegment(seg string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func signature(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return encodeSegment(mac.Sum(nil))
}
