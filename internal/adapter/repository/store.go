package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository/mongodb"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository/postgres"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Store bundles the repositories of one database driver
type Store struct {
	Meetings  repositories.MeetingRepository
	Messages  repositories.MessageRepository
	Minutes   repositories.MinutesRepository
	Feedbacks repositories.FeedbackRepository

	close func() error
}

// Close releases the underlying connection
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewMemoryStore builds process-local repositories
func NewMemoryStore() *Store {
	return &Store{
		Meetings:  memory.NewMeetingRepository(),
		Messages:  memory.NewMessageRepository(),
		Minutes:   memory.NewMinutesRepository(),
		Feedbacks: memory.NewFeedbackRepository(),
	}
}

// Open connects the database selected by DB_DRIVER and builds its repositories
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openPostgres(cfg)
	case config.DriverMemory:
		log.Println("⚠️  Using in-memory repositories, data is lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	db, err := database.NewMongoDB(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Store{
		Meetings:  mongodb.NewMeetingRepository(db),
		Messages:  mongodb.NewMessageRepository(db),
		Minutes:   mongodb.NewMinutesRepository(db),
		Feedbacks: mongodb.NewFeedbackRepository(db),
		close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Close(ctx)
		},
	}, nil
}

func openPostgres(cfg *config.Config) (*Store, error) {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	// Production deployments run cmd/migrate explicitly
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			_ = database.CloseDB(db)
			return nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production, run cmd/migrate instead")
		}
		log.Println("🔄 Applying embedded migrations (development only) ...")
		if _, err := database.Migrate(db, migrate.Up); err != nil {
			_ = database.CloseDB(db)
			return nil, err
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate in CI/CD/production")
	}

	return &Store{
		Meetings:  postgres.NewMeetingRepository(db),
		Messages:  postgres.NewMessageRepository(db),
		Minutes:   postgres.NewMinutesRepository(db),
		Feedbacks: postgres.NewFeedbackRepository(db),
		close:     func() error { return database.CloseDB(db) },
	}, nil
}
