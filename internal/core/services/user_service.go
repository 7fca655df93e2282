package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

type UserService struct {
	repo  ports.UserRepository
	media ports.MediaStorage
}

func NewUserService(repo ports.UserRepository, media ports.MediaStorage) *UserService {
	return &UserService{
		repo:  repo,
		media: media,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: fullName and email are required", domain.ErrInvalidInput)
	}

	user, err := s.repo.UpdateAccount(ctx, id, fullName, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, id, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: avatar image is required", domain.ErrInvalidInput)
	}

	url, err := s.media.UploadFile(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar: %v", domain.ErrMediaUpload, err)
	}

	user, err := s.repo.UpdateAvatar(ctx, id, url)
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateCoverImage(ctx context.Context, id, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: cover image is required", domain.ErrInvalidInput)
	}

	url, err := s.media.UploadFile(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cover image: %v", domain.ErrMediaUpload, err)
	}

	user, err := s.repo.UpdateCoverImage(ctx, id, url)
	if err != nil {
		return nil, fmt.Errorf("failed to update cover image: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

var _ ports.UserService = (*UserService)(nil)
