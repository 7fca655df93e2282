package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) ports.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.store.col(colUsers).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: email}},
	}}}
	return r.findOne(ctx, filter)
}

// UpdateRefreshToken overwrites the single live refresh token for the user.
// An empty token clears it (logout).
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id, token string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	if token == "" {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "refresh_token", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		}
	}
	res, err := r.store.col(colUsers).UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.store.col(colUsers).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password_hash", Value: passwordHash},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{
		{Key: "full_name", Value: fullName},
		{Key: "email", Value: email},
	})
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "avatar_url", Value: avatarURL}})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id, coverImageURL string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "cover_image_url", Value: coverImageURL}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var user domain.User
	err := r.store.col(colUsers).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// findOneAndUpdate applies a $set and returns the document as written, so
// callers always see the updated projection.
func (r *UserRepository) findOneAndUpdate(ctx context.Context, id string, fields bson.D) (*domain.User, error) {
	fields = append(fields, bson.E{Key: "updated_at", Value: time.Now()})

	var user domain.User
	err := r.store.col(colUsers).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}
