package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [up|drop]")
		os.Exit(1)
	}
	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("Archive tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("Archive tables dropped successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS meeting_archive (
			id                UUID PRIMARY KEY,
			mode              TEXT NOT NULL,
			duration_seconds  INTEGER NOT NULL,
			participant_count INTEGER NOT NULL,
			donation_count    INTEGER NOT NULL,
			finished_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meeting_donations (
			id                  UUID PRIMARY KEY,
			meeting_id          UUID NOT NULL REFERENCES meeting_archive(id) ON DELETE CASCADE,
			from_participant_id TEXT NOT NULL,
			to_participant_id   TEXT NOT NULL,
			amount_seconds      INTEGER NOT NULL,
			donated_at          TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meeting_archive_finished_at
			ON meeting_archive (finished_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_meeting_donations_meeting_id
			ON meeting_donations (meeting_id)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`DROP TABLE IF EXISTS meeting_donations`,
		`DROP TABLE IF EXISTS meeting_archive`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
