package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the standard JWT claims plus the user id and admin flag.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"uid"`
	IsAdmin bool   `json:"adm,omitempty"`
}

// GenerateToken signs an HS256 token for id that expires after ttl.
func GenerateToken(id Identity, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  id.ID,
		IsAdmin: id.IsAdmin,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates tokenString and returns its claims. Any failure,
// expiry included, is reported as common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
