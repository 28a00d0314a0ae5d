package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// tokenTTL is how long a session credential stays valid.
const tokenTTL = 30 * 24 * time.Hour

// Claims carries the authenticated user's id.
type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// GenerateToken issues a signed 30-day session token for the user.
func GenerateToken(secret []byte, userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a session token and returns the user id it carries.
func ParseToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}
