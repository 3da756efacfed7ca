package digest_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sharvari/wardrobe-backend/internal/digest"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/repository"
)

type fakeRepo struct {
	listWithWishlist func(ctx context.Context) ([]repository.UserWishlist, error)
}

func (r *fakeRepo) Create(context.Context, repository.CreateUserInput) (*domain.User, error) {
	panic("not used")
}
func (r *fakeRepo) FindByEmail(context.Context, string) (*domain.User, error) { panic("not used") }
func (r *fakeRepo) FindByID(context.Context, string) (*domain.User, error)    { panic("not used") }
func (r *fakeRepo) Wishlist(context.Context, string) ([]domain.WishlistItem, error) {
	panic("not used")
}
func (r *fakeRepo) AppendWishlistItem(context.Context, string, domain.WishlistItem) error {
	panic("not used")
}
func (r *fakeRepo) RemoveWishlistItem(context.Context, string, string) error { panic("not used") }
func (r *fakeRepo) ListWithWishlist(ctx context.Context) ([]repository.UserWishlist, error) {
	return r.listWithWishlist(ctx)
}

type fakeSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func userWith(email string, items ...domain.WishlistItem) repository.UserWishlist {
	return repository.UserWishlist{
		User:  &domain.User{ID: "id-" + email, FirstName: "A", Email: email},
		Items: items,
	}
}

func TestRun_EmailsOnlyUsersWithItems(t *testing.T) {
	repo := &fakeRepo{
		listWithWishlist: func(context.Context) ([]repository.UserWishlist, error) {
			return []repository.UserWishlist{
				userWith("a@example.com", domain.WishlistItem{Name: "Saree", Price: 1200}),
				userWith("b@example.com"),
				userWith("c@example.com", domain.WishlistItem{Name: "Kurta", Price: 800}),
			}, nil
		},
	}

	var sentTo []string
	sender := &fakeSender{
		send: func(_ context.Context, to, _, _ string) error {
			sentTo = append(sentTo, to)
			return nil
		},
	}

	if err := digest.New(repo, sender, testLogger()).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sentTo) != 2 || sentTo[0] != "a@example.com" || sentTo[1] != "c@example.com" {
		t.Errorf("sent to %v, want [a@example.com c@example.com]", sentTo)
	}
}

func TestRun_OneFailure_DoesNotAbortRun(t *testing.T) {
	repo := &fakeRepo{
		listWithWishlist: func(context.Context) ([]repository.UserWishlist, error) {
			return []repository.UserWishlist{
				userWith("a@example.com", domain.WishlistItem{Name: "Saree"}),
				userWith("b@example.com", domain.WishlistItem{Name: "Kurta"}),
			}, nil
		},
	}

	var sentTo []string
	sender := &fakeSender{
		send: func(_ context.Context, to, _, _ string) error {
			if to == "a@example.com" {
				return errors.New("bounce")
			}
			sentTo = append(sentTo, to)
			return nil
		},
	}

	if err := digest.New(repo, sender, testLogger()).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sentTo) != 1 || sentTo[0] != "b@example.com" {
		t.Errorf("sent to %v, want [b@example.com]", sentTo)
	}
}

func TestRun_RepoError_Propagates(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeRepo{
		listWithWishlist: func(context.Context) ([]repository.UserWishlist, error) {
			return nil, repoErr
		},
	}
	sender := &fakeSender{}

	err := digest.New(repo, sender, testLogger()).Run(context.Background())
	if !errors.Is(err, repoErr) {
		t.Errorf("want wrapped repoErr, got %v", err)
	}
}
