package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/metrics"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/middleware"
	"github.com/sharvari/wardrobe-backend/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"  binding:"required"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=8"`
}

var signupMessages = fieldMessages{
	"firstName": "First name is required",
	"lastName":  "Last name is required",
	"email":     "Valid email is required",
	"password":  "Password must be at least 8 characters",
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func publicUser(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// POST /api/auth/signup and /api/auth/register (kept as aliases for older
// storefront pages). Returns 201 {token, user}; the user object never
// includes the password hash.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, signupMessages)
		return
	}

	// "required" accepts whitespace-only values; names must survive a trim.
	var blank []fieldError
	if strings.TrimSpace(req.FirstName) == "" {
		blank = append(blank, fieldError{Field: "firstName", Message: signupMessages["firstName"]})
	}
	if strings.TrimSpace(req.LastName) == "" {
		blank = append(blank, fieldError{Field: "lastName", Message: signupMessages["lastName"]})
	}
	if blank != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": blank})
		return
	}

	user, token, err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errEmailTaken})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	metrics.SignupsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": publicUser(user)})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = fieldMessages{
	"email":    "Valid email is required",
	"password": "Password is required",
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, loginMessages)
		return
	}

	user, token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token, "user": publicUser(user)})
}

// GET /api/auth/me is guard-protected; the guard already resolved the user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, publicUser(middleware.CurrentUser(c)))
}

// POST /api/auth/logout is an acknowledgment only. Tokens are stateless, so
// discarding the client copy is the whole of logout; the token stays valid
// until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}
