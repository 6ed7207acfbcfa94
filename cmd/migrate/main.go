package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Migrations only apply to DB_DRIVER=postgres (got %q)", cfg.Database.Driver)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	if *down {
		log.Println("⏪ Rolling back the last migration...")
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database connection: %v", err)
		}
		n, err := migrate.ExecMax(sqlDB, "postgres", database.MigrationSource(), migrate.Down, 1)
		if err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		log.Printf("✅ Rolled back %d migration(s)", n)
		os.Exit(0)
	}

	log.Println("🔄 Applying embedded migrations...")
	if _, err := database.Migrate(db, migrate.Up); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
}
