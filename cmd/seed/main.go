package main

import (
	"context"
	"log"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-facilitator/pkg/logger"
)

// demo statements, spaced one minute apart from the meeting start
var statements = []struct {
	Speaker string
	Message string
}{
	{"Alice", "Let's start with the sprint demo. The export feature is done."},
	{"Bob", "The login bug is still open, I need another day for it."},
	{"Charlie", "We decided to postpone the dashboard redesign to next sprint."},
	{"Alice", "Bob, can you send the bug report to QA by Friday?"},
	{"Diana", "I think we should also talk about the release date."},
}

func main() {
	log.Println("🚀 Seeding a demo meeting...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		log.Fatalf("Seeding the in-memory driver has no effect, set DB_DRIVER=mongo or postgres")
	}

	logger, err := pkglogger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	log.Println("📦 Connecting to database...")
	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repos.Close()

	loc := cfg.Location()
	now := time.Now().In(loc)
	end := now.Add(time.Hour)

	// no analyzer: seeded statements should not trigger model calls
	service := meeting.NewService(repos.Meetings, repos.Messages, nil, loc, logger)

	m, err := service.CreateMeeting(ctx, meeting.CreateMeetingInput{
		Name:         "Sprint review",
		Purpose:      "Review the sprint and agree on the next one",
		StartDate:    now.Format("2006-01-02"),
		StartTime:    now.Format("15:04"),
		EndTime:      end.Format("15:04"),
		Participants: []string{"Alice", "Bob", "Charlie", "Diana"},
		Agenda: []entities.AgendaItem{
			{Topic: "Sprint demo", Duration: 20},
			{Topic: "Open bugs", Duration: 20},
			{Topic: "Next sprint planning", Duration: 20},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create meeting: %v", err)
	}
	log.Printf("✅ Created meeting %s", m.ID)

	for i, s := range statements {
		at := now.Add(time.Duration(i) * time.Minute)
		if _, err := service.PostMessage(ctx, meeting.PostMessageInput{
			MeetingID: m.ID,
			Speaker:   s.Speaker,
			Message:   s.Message,
			SpeakAt:   &at,
		}); err != nil {
			log.Fatalf("Failed to post message: %v", err)
		}
	}

	log.Printf("✅ Posted %d statements", len(statements))
	log.Printf("🔗 Try: GET /v1/meeting/%s/agent-feedback", m.ID)
}
