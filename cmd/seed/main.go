package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/adisetya/recipe-api/pkg/helpers"

	"github.com/adisetya/recipe-api/config"
)

// Seeds a superuser account. Registration through the API never sets the
// staff/superuser flags, so the first admin is created here.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, is_active, is_staff, is_superuser)
		VALUES ($1, $2, 'Admin', TRUE, TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_staff = TRUE, is_superuser = TRUE, updated_at = now()
		RETURNING id
	`, helpers.NormalizeEmail(email), hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed superuser: %v", err)
	}
	fmt.Printf("seeded superuser: id=%s email=%s\n", id, email)
}
