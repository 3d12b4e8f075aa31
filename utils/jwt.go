package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"businessconnect/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "business-connect-dev-secret"

// DefaultTokenTTL matches the lifetime of the session cookie.
const DefaultTokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims are the identity fields carried by a session token.
type TokenClaims struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(devSecret)
}

// TokenTTL returns the configured token lifetime.
func TokenTTL() time.Duration {
	if config.AppConfig.JWTTTL > 0 {
		return config.AppConfig.JWTTTL
	}
	return DefaultTokenTTL
}

// GenerateToken creates a signed JWT for the given user and session.
func GenerateToken(userID, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseToken validates the token and extracts its identity claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, errors.New("token does not contain a valid 'sid' claim")
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return &TokenClaims{UserID: sub, SessionID: sid, ExpiresAt: expiresAt}, nil
}
