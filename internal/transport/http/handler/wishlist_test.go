package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/repository"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/handler"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/middleware"
	"github.com/sharvari/wardrobe-backend/internal/usecase"
)

// Wishlist handlers sit behind the guard, so these tests run through the
// real middleware with a fake verifier and repo.

type fakeVerifier struct {
	verify func(raw string) (string, error)
}

func (f *fakeVerifier) Verify(raw string) (string, error) { return f.verify(raw) }

type guardRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *guardRepo) Create(context.Context, repository.CreateUserInput) (*domain.User, error) {
	panic("not used")
}
func (r *guardRepo) FindByEmail(context.Context, string) (*domain.User, error) { panic("not used") }
func (r *guardRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}
func (r *guardRepo) Wishlist(context.Context, string) ([]domain.WishlistItem, error) {
	panic("not used")
}
func (r *guardRepo) AppendWishlistItem(context.Context, string, domain.WishlistItem) error {
	panic("not used")
}
func (r *guardRepo) RemoveWishlistItem(context.Context, string, string) error { panic("not used") }
func (r *guardRepo) ListWithWishlist(context.Context) ([]repository.UserWishlist, error) {
	panic("not used")
}

type fakeWishlistUsecase struct {
	list   func(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	add    func(ctx context.Context, userID string, input usecase.AddItemInput) ([]domain.WishlistItem, error)
	remove func(ctx context.Context, userID, productID string) ([]domain.WishlistItem, error)
}

func (f *fakeWishlistUsecase) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	return f.list(ctx, userID)
}

func (f *fakeWishlistUsecase) Add(ctx context.Context, userID string, input usecase.AddItemInput) ([]domain.WishlistItem, error) {
	return f.add(ctx, userID, input)
}

func (f *fakeWishlistUsecase) Remove(ctx context.Context, userID, productID string) ([]domain.WishlistItem, error) {
	return f.remove(ctx, userID, productID)
}

var sareeItem = domain.WishlistItem{
	ProductID: "p1",
	Name:      "Saree",
	Price:     1200,
	Image:     "p1.jpg",
	DateAdded: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
}

func newWishlistEngine(uc *fakeWishlistUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewWishlistHandler(uc, logger)
	authH := handler.NewAuthHandler(&fakeAuthUsecase{}, logger)

	verifier := &fakeVerifier{verify: func(raw string) (string, error) {
		if raw != "goodtoken" {
			return "", domain.ErrTokenInvalid
		}
		return testUser.ID, nil
	}}
	users := &guardRepo{findByID: func(_ context.Context, id string) (*domain.User, error) {
		if id != testUser.ID {
			return nil, domain.ErrUserNotFound
		}
		return testUser, nil
	}}
	guard := middleware.Auth(verifier, users, logger)

	r := gin.New()
	r.GET("/api/auth/me", guard, authH.Me)
	r.POST("/api/auth/logout", guard, authH.Logout)
	r.GET("/api/wishlist", guard, h.List)
	r.POST("/api/wishlist", guard, h.Add)
	r.DELETE("/api/wishlist/:productId", guard, h.Remove)
	return r
}

func doAuthed(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer goodtoken")
	r.ServeHTTP(w, req)
	return w
}

// ---- List ----

func TestListWishlist_Empty_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeWishlistUsecase{
		list: func(_ context.Context, userID string) ([]domain.WishlistItem, error) {
			if userID != testUser.ID {
				t.Errorf("userID = %q, want %q", userID, testUser.ID)
			}
			return []domain.WishlistItem{}, nil
		},
	}
	w := doAuthed(newWishlistEngine(uc), http.MethodGet, "/api/wishlist", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

func TestListWishlist_NoToken_Returns401(t *testing.T) {
	uc := &fakeWishlistUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	newWishlistEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// ---- Add ----

func TestAddWishlistItem_Success_Returns201WithUpdatedList(t *testing.T) {
	uc := &fakeWishlistUsecase{
		add: func(_ context.Context, _ string, input usecase.AddItemInput) ([]domain.WishlistItem, error) {
			if input.ProductID != "p1" || input.Price != 1200 {
				t.Errorf("input = %+v", input)
			}
			return []domain.WishlistItem{sareeItem}, nil
		},
	}
	w := doAuthed(newWishlistEngine(uc), http.MethodPost, "/api/wishlist",
		`{"productId":"p1","name":"Saree","price":1200,"image":"p1.jpg"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		Message  string `json:"message"`
		Wishlist []struct {
			ProductID string `json:"productId"`
		} `json:"wishlist"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Product added to wishlist" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Wishlist) != 1 || resp.Wishlist[0].ProductID != "p1" {
		t.Errorf("wishlist = %+v", resp.Wishlist)
	}
}

func TestAddWishlistItem_Duplicate_Returns400(t *testing.T) {
	uc := &fakeWishlistUsecase{
		add: func(_ context.Context, _ string, _ usecase.AddItemInput) ([]domain.WishlistItem, error) {
			return nil, domain.ErrDuplicateItem
		},
	}
	w := doAuthed(newWishlistEngine(uc), http.MethodPost, "/api/wishlist",
		`{"productId":"p1","name":"Saree","price":1200,"image":"p1.jpg"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Product already in wishlist") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestAddWishlistItem_ZeroPrice_Returns400(t *testing.T) {
	uc := &fakeWishlistUsecase{}
	w := doAuthed(newWishlistEngine(uc), http.MethodPost, "/api/wishlist",
		`{"productId":"p1","name":"Saree","price":0,"image":"p1.jpg"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Price must be greater than 0") {
		t.Errorf("body = %q, want price field error", w.Body.String())
	}
}

func TestAddWishlistItem_MissingProductID_Returns400(t *testing.T) {
	uc := &fakeWishlistUsecase{}
	w := doAuthed(newWishlistEngine(uc), http.MethodPost, "/api/wishlist",
		`{"name":"Saree","price":1200,"image":"p1.jpg"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Remove ----

func TestRemoveWishlistItem_Returns200WithUpdatedList(t *testing.T) {
	uc := &fakeWishlistUsecase{
		remove: func(_ context.Context, _ string, productID string) ([]domain.WishlistItem, error) {
			if productID != "p1" {
				t.Errorf("productID = %q, want p1", productID)
			}
			return []domain.WishlistItem{}, nil
		},
	}
	w := doAuthed(newWishlistEngine(uc), http.MethodDelete, "/api/wishlist/p1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Product removed from wishlist") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestRemoveWishlistItem_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeWishlistUsecase{
		remove: func(_ context.Context, _, _ string) ([]domain.WishlistItem, error) {
			return nil, errors.New("db down")
		},
	}
	w := doAuthed(newWishlistEngine(uc), http.MethodDelete, "/api/wishlist/p1", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

// ---- Me / Logout (guard-protected auth endpoints) ----

func TestMe_ValidToken_ReturnsPublicUser(t *testing.T) {
	w := doAuthed(newWishlistEngine(&fakeWishlistUsecase{}), http.MethodGet, "/api/auth/me", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"email":"asha@example.com"`) {
		t.Errorf("body = %q, want user email", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("body leaks password hash: %q", w.Body.String())
	}
}

func TestMe_InvalidToken_Returns401(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expiredtoken")
	newWishlistEngine(&fakeWishlistUsecase{}).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogout_ValidToken_Returns200Ack(t *testing.T) {
	w := doAuthed(newWishlistEngine(&fakeWishlistUsecase{}), http.MethodPost, "/api/auth/logout", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Logged out successfully") {
		t.Errorf("body = %q", w.Body.String())
	}
}
