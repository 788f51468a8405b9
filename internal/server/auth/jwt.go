// Package auth issues and parses the signed bearer tokens handed out on
// sign-in. A token embeds the account's two session counters; bumping either
// counter in storage invalidates every previously issued token without a
// revocation list. Matching the embedded counters against storage is the
// caller's job (see services.AuthService.Authenticate).
package auth

import (
	"errors"
	"time"

	"authd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token claim set: the account login plus the two
// session-versioning counters, and the registered expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	Login       string `json:"login"`
	TokenNumber int64  `json:"tokenNumber"`
	UpdateToken int64  `json:"updateToken"`
}

// GenerateToken signs a claim set with HS256. The token expires
// validityDuration after issuance (wall clock).
func GenerateToken(login string, tokenNumber, updateToken int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Login:       login,
		TokenNumber: tokenNumber,
		UpdateToken: updateToken,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken checks the signature and expiry of tokenString and returns its
// claims. Expired tokens yield common.ErrTokenExpired; any other defect
// yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
