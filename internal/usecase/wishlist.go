package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/repository"
)

type WishlistUsecase struct {
	users repository.UserRepository
}

func NewWishlistUsecase(users repository.UserRepository) *WishlistUsecase {
	return &WishlistUsecase{users: users}
}

func (u *WishlistUsecase) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := u.users.Wishlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

type AddItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Image     string
}

// Add appends the product and returns the full updated wishlist.
// A productId already present for this user yields ErrDuplicateItem and
// no state change.
func (u *WishlistUsecase) Add(ctx context.Context, userID string, input AddItemInput) ([]domain.WishlistItem, error) {
	err := u.users.AppendWishlistItem(ctx, userID, domain.WishlistItem{
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateItem) {
			return nil, domain.ErrDuplicateItem
		}
		return nil, fmt.Errorf("add wishlist item: %w", err)
	}

	return u.List(ctx, userID)
}

// Remove deletes the product if present and returns the full updated
// wishlist. Removing an absent productId is a successful no-op.
func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID string) ([]domain.WishlistItem, error) {
	if err := u.users.RemoveWishlistItem(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("remove wishlist item: %w", err)
	}
	return u.List(ctx, userID)
}
