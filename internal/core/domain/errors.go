package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserAlreadyExists  = errors.New("username or email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenSuperseded    = errors.New("refresh token superseded")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMediaUpload        = errors.New("media upload failed")
	ErrInternal           = errors.New("internal server error")
)
