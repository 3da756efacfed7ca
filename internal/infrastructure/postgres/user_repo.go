package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, input repository.CreateUserInput) (*domain.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, first_name, last_name, email, password_hash, created_at`

	row := r.pool.QueryRow(ctx, query,
		input.FirstName,
		input.LastName,
		input.Email,
		input.PasswordHash,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM users
		WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) Wishlist(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	query := `
		SELECT product_id, name, price, image, date_added
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY date_added ASC, product_id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	return scanWishlist(rows)
}

// AppendWishlistItem relies on the (user_id, product_id) primary key to
// reject duplicates atomically, even under concurrent adds.
func (r *UserRepository) AppendWishlistItem(ctx context.Context, userID string, item domain.WishlistItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, name, price, image)
		VALUES ($1, $2, $3, $4, $5)`,
		userID, item.ProductID, item.Name, item.Price, item.Image,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("append wishlist item: %w", err)
	}
	return nil
}

// RemoveWishlistItem is idempotent: deleting an absent product is a no-op.
func (r *UserRepository) RemoveWishlistItem(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return nil
}

func (r *UserRepository) ListWithWishlist(ctx context.Context) ([]repository.UserWishlist, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.created_at,
		       w.product_id, w.name, w.price, w.image, w.date_added
		FROM users u
		JOIN wishlist_items w ON w.user_id = u.id
		ORDER BY u.id, w.date_added ASC, w.product_id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users with wishlist: %w", err)
	}
	defer rows.Close()

	var result []repository.UserWishlist
	var current *repository.UserWishlist

	for rows.Next() {
		var u domain.User
		var item domain.WishlistItem
		err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt,
			&item.ProductID, &item.Name, &item.Price, &item.Image, &item.DateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user wishlist: %w", err)
		}

		if current == nil || current.User.ID != u.ID {
			result = append(result, repository.UserWishlist{User: &u})
			current = &result[len(result)-1]
		}
		current.Items = append(current.Items, item)
	}
	return result, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanWishlist(rows pgx.Rows) ([]domain.WishlistItem, error) {
	items := []domain.WishlistItem{}
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Image, &item.DateAdded); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
