package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/email"
	"github.com/sharvari/wardrobe-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// tokenIssuer is the subset of token.Service the usecase needs.
type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens tokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup creates the user with a bcrypt hash of the password and returns
// the record plus a fresh session token. The email-exists pre-check is an
// optimization only; the unique index is what actually enforces
// uniqueness, so the insert's ErrEmailTaken path is always handled.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	emailAddr := NormalizeEmail(input.Email)

	if _, err := u.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        emailAddr,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	// Welcome email must never fail or slow down the signup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.email.Send(ctx, user.Email, welcomeSubject, welcomeBody(user.FirstName)); err != nil {
			u.logger.Warn("welcome email", "error", err)
		}
	}()

	return user, signed, nil
}

// Login verifies the password and issues a token. Unknown email and wrong
// password collapse into the same ErrInvalidCredentials so responses carry
// no enumeration signal.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}

// NormalizeEmail applies the canonical form used everywhere an email is
// stored or looked up: trimmed, lowercased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

const welcomeSubject = "Welcome to Sharvari Wardrobe"

func welcomeBody(firstName string) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your account is ready. Start saving the pieces you love to your wishlist.</p>`,
		firstName,
	)
}
