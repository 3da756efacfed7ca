package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/metrics"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/middleware"
	"github.com/sharvari/wardrobe-backend/internal/usecase"
)

type wishlistUsecaser interface {
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, userID string, input usecase.AddItemInput) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, userID, productID string) ([]domain.WishlistItem, error)
}

type WishlistHandler struct {
	wishlistUsecase wishlistUsecaser
	logger          *slog.Logger
}

func NewWishlistHandler(wishlistUsecase wishlistUsecaser, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistUsecase: wishlistUsecase,
		logger:          logger.With("component", "wishlist_handler"),
	}
}

type wishlistItemResponse struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	DateAdded time.Time `json:"dateAdded"`
}

func wishlistResponse(items []domain.WishlistItem) []wishlistItemResponse {
	out := make([]wishlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, wishlistItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			DateAdded: item.DateAdded,
		})
	}
	return out
}

// GET /api/wishlist returns the bare item array in insertion order.
func (h *WishlistHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.wishlistUsecase.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list wishlist", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, wishlistResponse(items))
}

type addItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name"      binding:"required"`
	Price     float64 `json:"price"     binding:"required,gt=0"`
	Image     string  `json:"image"     binding:"required"`
}

var addItemMessages = fieldMessages{
	"productId": "Product id is required",
	"name":      "Name is required",
	"price":     "Price must be greater than 0",
	"image":     "Image is required",
}

// POST /api/wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, addItemMessages)
		return
	}

	items, err := h.wishlistUsecase.Add(c.Request.Context(), user.ID, usecase.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateItem) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errDuplicateItem})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "add wishlist item", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	metrics.WishlistMutationsTotal.WithLabelValues("add").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message":  msgWishlistAdded,
		"wishlist": wishlistResponse(items),
	})
}

// DELETE /api/wishlist/:productId is idempotent; removing an absent product
// still returns 200 with the (unchanged) wishlist.
func (h *WishlistHandler) Remove(c *gin.Context) {
	user := middleware.CurrentUser(c)
	productID := c.Param("productId")

	items, err := h.wishlistUsecase.Remove(c.Request.Context(), user.ID, productID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "remove wishlist item",
			"user_id", user.ID, "product_id", productID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	metrics.WishlistMutationsTotal.WithLabelValues("remove").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":  msgWishlistRemoved,
		"wishlist": wishlistResponse(items),
	})
}
