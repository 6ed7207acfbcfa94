package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

type minutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository. Every write is a
// read-modify-write of the meeting's row under SELECT ... FOR UPDATE.
func NewMinutesRepository(db *gorm.DB) repositories.MinutesRepository {
	return &minutesRepository{db: db}
}

func (r *minutesRepository) Get(ctx context.Context, meetingID string) (*entities.Minutes, error) {
	if !isUUID(meetingID) {
		return nil, nil
	}
	row, err := findMinutes(r.db.WithContext(ctx), meetingID, false)
	if err != nil || row == nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *minutesRepository) Ensure(ctx context.Context, minutes *entities.Minutes) (*entities.Minutes, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(newMinutesRow(minutes)).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, minutes.MeetingID)
}

func (r *minutesRepository) ReplaceAgenda(ctx context.Context, meetingID string, agenda []entities.MinutesAgendaItem) error {
	return r.mutate(ctx, meetingID, func(m *entities.Minutes) {
		m.Agenda = agenda
	})
}

func (r *minutesRepository) ReplaceDecisions(ctx context.Context, meetingID string, decisions []entities.Decision) error {
	return r.mutate(ctx, meetingID, func(m *entities.Minutes) {
		m.Decisions = decisions
	})
}

func (r *minutesRepository) AppendDecision(ctx context.Context, meetingID string, decision entities.Decision) error {
	return r.mutate(ctx, meetingID, func(m *entities.Minutes) {
		m.Decisions = append(m.Decisions, decision)
	})
}

func (r *minutesRepository) ReplaceActionPlan(ctx context.Context, meetingID string, items []entities.ActionItem) error {
	return r.mutate(ctx, meetingID, func(m *entities.Minutes) {
		m.ActionPlan = items
	})
}

func (r *minutesRepository) AppendActionItem(ctx context.Context, meetingID string, item entities.ActionItem) error {
	return r.mutate(ctx, meetingID, func(m *entities.Minutes) {
		m.ActionPlan = append(m.ActionPlan, item)
	})
}

// mutate locks the minutes row, applies fn and saves it, creating the row if missing
func (r *minutesRepository) mutate(ctx context.Context, meetingID string, fn func(*entities.Minutes)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findMinutes(tx, meetingID, true)
		if err != nil {
			return err
		}

		var minutes *entities.Minutes
		if row == nil {
			minutes = &entities.Minutes{MeetingID: meetingID, Name: entities.MinutesDocumentName}
		} else {
			minutes = row.toEntity()
		}

		fn(minutes)
		minutes.UpdatedAt = time.Now().UTC()

		return tx.Save(newMinutesRow(minutes)).Error
	})
}

func findMinutes(db *gorm.DB, meetingID string, lock bool) (*minutesRow, error) {
	query := db.Where("meeting_id = ? AND name = ?", meetingID, entities.MinutesDocumentName)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row minutesRow
	err := query.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
