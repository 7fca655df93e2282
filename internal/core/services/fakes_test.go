package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

// memoryUserRepo is an in-memory ports.UserRepository. Single-document
// updates are atomic under the mutex, mirroring the storage guarantees the
// real adapter provides.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) UpdateRefreshToken(_ context.Context, id, token string) error {
	return r.update(id, func(u *domain.User) { u.RefreshToken = token })
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r *memoryUserRepo) UpdateAccount(_ context.Context, id, fullName, email string) (*domain.User, error) {
	return r.updateAndGet(id, func(u *domain.User) {
		u.FullName = fullName
		u.Email = email
	})
}

func (r *memoryUserRepo) UpdateAvatar(_ context.Context, id, avatarURL string) (*domain.User, error) {
	return r.updateAndGet(id, func(u *domain.User) { u.AvatarURL = avatarURL })
}

func (r *memoryUserRepo) UpdateCoverImage(_ context.Context, id, coverImageURL string) (*domain.User, error) {
	return r.updateAndGet(id, func(u *domain.User) { u.CoverImageURL = coverImageURL })
}

func (r *memoryUserRepo) update(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	r.users[id] = u
	return nil
}

func (r *memoryUserRepo) updateAndGet(id string, fn func(*domain.User)) (*domain.User, error) {
	if err := r.update(id, fn); err != nil {
		return nil, nil
	}
	return r.GetByID(context.Background(), id)
}

var _ ports.UserRepository = (*memoryUserRepo)(nil)

// fakeMedia records uploads and can be told to fail.
type fakeMedia struct {
	mu      sync.Mutex
	uploads []string
	fail    bool
}

func (m *fakeMedia) UploadFile(_ context.Context, localPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", fmt.Errorf("upstream rejected upload")
	}
	m.uploads = append(m.uploads, localPath)
	return "https://media.test/" + localPath, nil
}

var _ ports.MediaStorage = (*fakeMedia)(nil)
