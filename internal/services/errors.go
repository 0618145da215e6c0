package services

import (
	"errors"
)

// Domain errors surfaced to handlers, which translate them into form
// messages, redirects, or error pages.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotConfirmed       = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAlreadyConfirmed   = errors.New("email already confirmed")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyLiked       = errors.New("already liked")
	ErrLikeNotFound       = errors.New("like not found")
	ErrInvalidBoard       = errors.New("invalid board")
	ErrAlreadySaved       = errors.New("pin already saved to this board")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrAdminProtected     = errors.New("admin accounts cannot be deleted")
)
