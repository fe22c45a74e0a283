package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/linkigram/backend/internal/apperrors"
	"github.com/linkigram/backend/internal/models"
)

// TokenService issues and verifies signed session tokens. Tokens are
// self-describing: verification is purely cryptographic, no server-side
// session table.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret must be non-empty;
// callers are expected to refuse to start without one.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed credential binding userID.
func (s *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify resolves a credential back to the user id it was issued for.
// Any failure (bad signature, malformed payload, wrong signing method,
// expiry) is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.ErrInvalidToken
	}
	return claims.UserID, nil
}
