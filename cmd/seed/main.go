// seed creates the users schema and a few demo accounts in the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/infrastructure/postgres"
	"github.com/wpdmadhuranga/auth-service/internal/password"
)

type account struct {
	name     string
	email    string
	password string
}

var accounts = []account{
	{"Demo User", "demo@test.local", "password123"},
	{"Alice Example", "alice@test.local", "password123"},
	{"Bob Example", "bob@test.local", "password123"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	repo := postgres.NewUserRepository(pool, password.NewHasher(password.DefaultCost))

	var created, skipped int
	for _, a := range accounts {
		u, err := repo.Create(ctx, a.name, a.email, a.password)
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				skipped++
				continue
			}
			log.Fatalf("create %s: %v", a.email, err)
		}
		created++
		fmt.Printf("  created %s (id %s)\n", u.Email, u.ID)
	}

	fmt.Println()
	fmt.Println("Seed complete")
	fmt.Printf("  Accounts created: %d  (skipped %d already existing)\n", created, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/api/v1/auth/login \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"demo@test.local\",\"password\":\"password123\"}'")
	fmt.Println()
	fmt.Println("  Step 2 — call a protected route with the access token:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/v1/user/profile -H \"Authorization: Bearer $JWT\"")
}
