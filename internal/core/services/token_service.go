package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

// TokenService issues and verifies HS256 JWTs. Access and refresh tokens are
// signed with independent secrets, so compromise of one class does not
// compromise the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, tokenTypeAccess, s.accessTTL, s.accessSecret)
}

func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, tokenTypeRefresh, s.refreshTTL, s.refreshSecret)
}

func (s *TokenService) issue(userID, typ string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	return s.verify(token, tokenTypeAccess, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (string, error) {
	return s.verify(token, tokenTypeRefresh, s.refreshSecret)
}

// verify collapses every failure cause (bad signature, expiry, malformed
// input, wrong token class) into ErrInvalidToken so callers cannot tell
// which check rejected the token.
func (s *TokenService) verify(tokenString, typ string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Type != typ || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

var _ ports.TokenService = (*TokenService)(nil)
