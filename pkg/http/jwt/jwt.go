package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/**
 * @file: jwt.go
 * @description: access/refresh token pair, HS256
 */

var issuer = "atrium"

// AuthClaims is embedded in both the access and the refresh token.
type AuthClaims struct {
	UserId   int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// GenToken issues an access_token and a refresh_token for the same identity.
func GenToken(userId int64, username, name string, secretKey []byte, accessExpire, refreshExpire time.Duration) (aToken, rToken string, err error) {

	now := time.Now()

	aClaims := &AuthClaims{
		UserId:   userId,
		Username: username,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpire * time.Minute)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	aToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if err != nil {
		return "", "", err
	}

	rClaims := &AuthClaims{
		UserId:   userId,
		Username: username,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshExpire * time.Minute)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	rToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if err != nil {
		return "", "", err
	}

	return aToken, rToken, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func ParseToken(token, secretKey string) (*AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := parsed.Claims.(*AuthClaims); ok && parsed.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
