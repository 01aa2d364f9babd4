// Package security inspects access tokens on the client side.
//
// The client holds no signing key, so tokens are decoded without signature
// verification; the server remains the authority on validity. The only
// question answered here is whether a token is worth presenting at all.
package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parser decodes without validating claims; expiry is checked explicitly so
// that a missing exp claim can be treated as expired rather than as valid.
var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Claims are the token claims the client cares about.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
}

// Decode parses the token payload without verifying the signature. The jwt
// parse error is returned as is for anything undecodable.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether the token is expired: decode failure, a missing
// exp claim, or exp at or before now all count as expired. It never fails;
// a malformed token is an expired token, not an error.
func IsExpired(token string) bool {
	return isExpiredAt(token, time.Now())
}

func isExpiredAt(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(now)
}
