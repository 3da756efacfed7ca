// seed inserts two demo shoppers with known passwords and a few wishlist
// items into the local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sharvari/wardrobe-backend/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

type userSpec struct {
	firstName string
	lastName  string
	email     string
	password  string
}

type itemSpec struct {
	email     string
	productID string
	name      string
	price     float64
	image     string
}

var users = []userSpec{
	{"Asha", "Rao", "asha@test.local", "longpass1"},
	{"Meera", "Iyer", "meera@test.local", "longpass2"},
}

var items = []itemSpec{
	{"asha@test.local", "saree-banarasi-01", "Banarasi Silk Saree", 4200, "img/saree-banarasi-01.jpg"},
	{"asha@test.local", "kurta-chikan-02", "Chikankari Kurta", 1450, "img/kurta-chikan-02.jpg"},
	{"meera@test.local", "dupatta-phulkari-01", "Phulkari Dupatta", 899, "img/dupatta-phulkari-01.jpg"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ids := make(map[string]string)
	for _, spec := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(spec.password), 12)
		if err != nil {
			log.Fatalf("hash %s: %v", spec.email, err)
		}

		// Idempotent re-runs: existing users keep their row and password.
		var id string
		err = pool.QueryRow(ctx, `
			INSERT INTO users (first_name, last_name, email, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
			RETURNING id`,
			spec.firstName, spec.lastName, spec.email, string(hash),
		).Scan(&id)
		if err != nil {
			log.Fatalf("upsert user %s: %v", spec.email, err)
		}
		ids[spec.email] = id
	}

	var inserted, skipped int
	for _, spec := range items {
		tag, err := pool.Exec(ctx, `
			INSERT INTO wishlist_items (user_id, product_id, name, price, image)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, product_id) DO NOTHING`,
			ids[spec.email], spec.productID, spec.name, spec.price, spec.image,
		)
		if err != nil {
			log.Fatalf("insert item %s: %v", spec.productID, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	for _, spec := range users {
		fmt.Printf("  %s  (password: %s, id: %s)\n", spec.email, spec.password, ids[spec.email])
	}
	fmt.Printf("  Wishlist items: %d inserted, %d already existing\n", inserted, skipped)
}
