package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

// AuthService implements the session lifecycle: register, login, logout,
// refresh and password change. It holds no transport-specific state.
type AuthService struct {
	userRepo ports.UserRepository
	tokens   ports.TokenService
	media    ports.MediaStorage
}

func NewAuthService(userRepo ports.UserRepository, tokens ports.TokenService, media ports.MediaStorage) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		media:    media,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if fullName == "" || username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: fullName, username, email and password are required", domain.ErrInvalidInput)
	}
	if in.AvatarPath == "" {
		return nil, fmt.Errorf("%w: avatar image is required", domain.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	avatarURL, err := s.media.UploadFile(ctx, in.AvatarPath)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar: %v", domain.ErrMediaUpload, err)
	}

	var coverImageURL string
	if in.CoverImagePath != "" {
		coverImageURL, err = s.media.UploadFile(ctx, in.CoverImagePath)
		if err != nil {
			return nil, fmt.Errorf("%w: cover image: %v", domain.ErrMediaUpload, err)
		}
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		WatchHistory:  []string{},
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique indexes on username and email backstop the existence check
	// above when two registrations race.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, *ports.TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" && email == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	if !user.CheckPassword(in.Password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new pair and rotates the
// stored token, permanently invalidating the presented one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}

	// A cryptographically valid token that no longer matches the stored
	// value has been rotated out.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, domain.ErrTokenSuperseded
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return domain.ErrInvalidCredentials
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, user.PasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	// Existing refresh tokens survive a password change. Revoking them here
	// is an open product decision; see DESIGN.md.
	return nil
}

// issuePair mints a fresh access/refresh pair and persists the refresh token
// as the single live one for the user. Concurrent logins/refreshes race on a
// single-document write; the last writer wins.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
