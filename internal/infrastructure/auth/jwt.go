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

var (
	ErrTokenFormat    = errors.New("invalid token format")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the accepted token payload. Extra claims are ignored.
type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// SignToken issues a compact HS256 token. Used by the login flow and by
// tests; verification is the hot path.
func SignToken(claims Claims, secret string) string {
	header, _ := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	payload, _ := json.Marshal(claims)

	enc := base64.RawURLEncoding
	signingInput := enc.EncodeToString(header) + "." + enc.EncodeToString(payload)
	return signingInput + "." + sign(signingInput, secret)
}

// VerifyToken checks the signature and expiry of a compact HS256 token
// and returns its claims. Tokens without an exp claim never expire.
func VerifyToken(token, secret string, now time.Time) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrTokenFormat
	}

	signingInput := parts[0] + "." + parts[1]
	expected := sign(signingInput, secret)
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return Claims{}, ErrTokenSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenFormat, err)
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenFormat, err)
	}

	if claims.ExpiresAt > 0 && claims.ExpiresAt < now.Unix() {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

func sign(signingInput, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
