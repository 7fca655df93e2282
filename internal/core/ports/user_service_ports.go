package ports

import (
	"context"

	"github.com/vidstream/api/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id, localPath string) (*domain.User, error)
}
