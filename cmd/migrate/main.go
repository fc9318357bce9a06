package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/config"
	"github.com/pratik-mahalle/freelancehub/internal/db"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Gateway.Backend != config.BackendSQL {
		fmt.Fprintln(os.Stderr, "Migrations only apply to the sql backend; the hosted backend manages its own schema")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: "console"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Printf("Connected to %s database\n", cfg.Database.Driver)

	applied, err := db.Migrate(ctx, database, cfg.Database.Driver, migrations.GetFS(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Schema is up to date")
		return
	}
	fmt.Printf("\nApplied %d migration(s) successfully!\n", applied)
}
