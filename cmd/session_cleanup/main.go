package main

import (
	"context"
	"log"
	"time"

	"questionbank/internal/config"
	"questionbank/internal/database"
	"questionbank/internal/repository"
)

// Revoked sessions are kept this long for auditing before removal.
const revokedRetention = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	now := time.Now().UTC()
	deleted, err := repository.NewSessionRepository(db).DeleteStale(context.Background(), now, now.Add(-revokedRetention))
	if err != nil {
		log.Fatalf("cleanup sessions failed: %v", err)
	}

	log.Printf("session cleanup completed: sessions=%d", deleted)
}
