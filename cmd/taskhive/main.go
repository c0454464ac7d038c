package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/taskhive/taskhive/db"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/handlers"
	"github.com/taskhive/taskhive/internal/router"
	"github.com/taskhive/taskhive/internal/store/gormstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	ttl := 24 * time.Hour
	if hours := os.Getenv("TOKEN_TTL_HOURS"); hours != "" {
		parsed, err := strconv.Atoi(hours)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL_HOURS: %v", err)
		}
		ttl = time.Duration(parsed) * time.Hour
	}

	database, err := db.Connect(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens := auth.NewTokenManager(secret, ttl)
	h := handlers.New(gormstore.New(database), tokens, authz.NewGuard())
	r := router.New(h, tokens)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
