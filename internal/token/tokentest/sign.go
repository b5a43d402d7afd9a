// Package tokentest signs tokens the way the main portal does, for use in
// tests only.
package tokentest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims returns the claims for a portal token expiring at exp.
func Claims(userID, email, name string, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"name":    name,
		"exp":     exp.Unix(),
	}
}

// Sign returns claims signed with HS256 using secret. It panics if signing
// fails, which can only happen for unencodable claims.
func Sign(secret string, claims jwt.Claims) string {
	return SignWith(jwt.SigningMethodHS256, []byte(secret), claims)
}

// SignWith signs claims with an arbitrary method and key.
func SignWith(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		panic(err)
	}
	return s
}
