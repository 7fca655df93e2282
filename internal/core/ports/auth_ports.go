package ports

import (
	"context"

	"github.com/vidstream/api/internal/core/domain"
)

type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string // local path of the staged avatar upload, required
	CoverImagePath string // optional
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

// TokenPair is an access/refresh token pair bound to one user.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService issues and verifies signed tokens. Issuance is pure; the
// stored-value check for refresh tokens belongs to AuthService.
type TokenService interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(token string) (string, error)  // returns user ID
	VerifyRefreshToken(token string) (string, error) // returns user ID
}

// AuthService orchestrates the session lifecycle over the credential store.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, *TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
