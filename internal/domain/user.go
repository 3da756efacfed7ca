package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrDuplicateItem      = errors.New("product already in wishlist")
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// WishlistItem is one saved product. A user holds at most one item per
// ProductID; ordering is by DateAdded (insertion order).
type WishlistItem struct {
	ProductID string
	Name      string
	Price     float64
	Image     string
	DateAdded time.Time
}
