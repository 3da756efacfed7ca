package repository

import (
	"context"

	"github.com/sharvari/wardrobe-backend/internal/domain"
)

type CreateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// UserRepository is the credential store. Email uniqueness and the
// one-item-per-product wishlist invariant are enforced by the store itself;
// callers treat any pre-checks as advisory.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	Wishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	AppendWishlistItem(ctx context.Context, userID string, item domain.WishlistItem) error
	RemoveWishlistItem(ctx context.Context, userID, productID string) error

	// ListWithWishlist returns every user holding at least one wishlist
	// item, with their items attached. Used by the reminder digest.
	ListWithWishlist(ctx context.Context) ([]UserWishlist, error)
}

type UserWishlist struct {
	User  *domain.User
	Items []domain.WishlistItem
}
