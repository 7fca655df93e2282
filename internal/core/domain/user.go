package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the persisted credential record. PasswordHash and RefreshToken are
// excluded from every JSON projection, so responses can never leak them.
type User struct {
	ID            string    `json:"id" bson:"_id"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	FullName      string    `json:"fullName" bson:"full_name"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	AvatarURL     string    `json:"avatarUrl" bson:"avatar_url"`
	CoverImageURL string    `json:"coverImageUrl,omitempty" bson:"cover_image_url,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	WatchHistory  []string  `json:"watchHistory" bson:"watch_history"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// SetPassword hashes the plaintext secret and stores the result. Hashing
// happens here and nowhere else: at registration and password change.
func (u *User) SetPassword(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the secret matches the stored hash.
// bcrypt's comparison is constant-time.
func (u *User) CheckPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)) == nil
}
