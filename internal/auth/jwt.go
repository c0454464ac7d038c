package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and validates the bearer tokens that bind a request
// to a member identity. Tokens are stateless; there is no revocation list
// and logout is a client-side discard.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying memberID as subject with an expiry.
func (tm *TokenManager) Issue(memberID uint) (string, error) {
	claims := jwt.MapClaims{
		"member_id": memberID,
		"exp":       time.Now().Add(tm.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate verifies signature and expiry and returns the member id the
// token was issued for. It does not check that the member still exists;
// that is the caller's job before trusting the identity.
func (tm *TokenManager) Validate(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})

	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	memberIDFloat, ok := claims["member_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid member id in token claims")
	}

	return uint(memberIDFloat), nil
}
