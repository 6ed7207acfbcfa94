package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// isUUID reports whether id fits the uuid key columns. Anything else
// cannot match a row and would make Postgres reject the query.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// meetingRow maps the meetings table. The intervention request is flattened
// into nullable columns so that a meeting without one reads back as nil.
type meetingRow struct {
	ID                    string                                   `gorm:"type:uuid;primaryKey"`
	Name                  string                                   `gorm:"column:meeting_name;type:varchar(255);not null"`
	Purpose               string                                   `gorm:"column:meeting_purpose;type:text"`
	StartDate             string                                   `gorm:"type:varchar(10);not null"`
	StartTime             string                                   `gorm:"type:varchar(5);not null"`
	EndTime               string                                   `gorm:"type:varchar(5);not null"`
	Participants          datatypes.JSONSlice[string]              `gorm:"type:jsonb;not null"`
	Agenda                datatypes.JSONSlice[entities.AgendaItem] `gorm:"type:jsonb;not null"`
	InterventionStatus    *string                                  `gorm:"type:varchar(20)"`
	InterventionReason    *string                                  `gorm:"type:text"`
	InterventionCreatedAt *time.Time
	InterventionUpdatedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (meetingRow) TableName() string { return "meetings" }

func newMeetingRow(m *entities.Meeting) *meetingRow {
	row := &meetingRow{
		ID:           m.ID,
		Name:         m.Name,
		Purpose:      m.Purpose,
		StartDate:    m.StartDate,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Participants: datatypes.JSONSlice[string](nonNil(m.Participants)),
		Agenda:       datatypes.JSONSlice[entities.AgendaItem](nonNil(m.Agenda)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if req := m.InterventionRequest; req != nil {
		status := string(req.Status)
		reason := req.Reason
		created, updated := req.CreatedAt, req.UpdatedAt
		row.InterventionStatus = &status
		row.InterventionReason = &reason
		row.InterventionCreatedAt = &created
		row.InterventionUpdatedAt = &updated
	}
	return row
}

func (r *meetingRow) toEntity() *entities.Meeting {
	m := &entities.Meeting{
		ID:           r.ID,
		Name:         r.Name,
		Purpose:      r.Purpose,
		StartDate:    r.StartDate,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Participants: nonNil([]string(r.Participants)),
		Agenda:       nonNil([]entities.AgendaItem(r.Agenda)),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.InterventionStatus != nil {
		req := &entities.InterventionRequest{Status: entities.InterventionStatus(*r.InterventionStatus)}
		if r.InterventionReason != nil {
			req.Reason = *r.InterventionReason
		}
		if r.InterventionCreatedAt != nil {
			req.CreatedAt = r.InterventionCreatedAt.UTC()
		}
		if r.InterventionUpdatedAt != nil {
			req.UpdatedAt = r.InterventionUpdatedAt.UTC()
		}
		m.InterventionRequest = req
	}
	return m
}

// messageRow maps the comments table
type messageRow struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	MeetingID string    `gorm:"type:uuid;not null;index"`
	Speaker   string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	SpeakAt   time.Time `gorm:"not null"`
	MetaRole  *string   `gorm:"type:varchar(20)"`
	MetaType  *string   `gorm:"type:varchar(20)"`
}

func (messageRow) TableName() string { return "comments" }

func newMessageRow(m *entities.Message) *messageRow {
	row := &messageRow{
		ID:        m.ID,
		MeetingID: m.MeetingID,
		Speaker:   m.Speaker,
		Message:   m.Message,
		SpeakAt:   m.SpeakAt,
	}
	if m.Meta != nil {
		role, typ := m.Meta.Role, m.Meta.Type
		row.MetaRole = &role
		row.MetaType = &typ
	}
	return row
}

func (r *messageRow) toEntity() *entities.Message {
	m := &entities.Message{
		ID:        r.ID,
		MeetingID: r.MeetingID,
		Speaker:   r.Speaker,
		Message:   r.Message,
		SpeakAt:   r.SpeakAt.UTC(),
	}
	if r.MetaRole != nil {
		m.Meta = &entities.MessageMeta{Role: *r.MetaRole}
		if r.MetaType != nil {
			m.Meta.Type = *r.MetaType
		}
	}
	return m
}

// minutesRow maps the minutes table, keyed by meeting and document name
type minutesRow struct {
	MeetingID  string                                          `gorm:"type:uuid;primaryKey"`
	Name       string                                          `gorm:"type:varchar(64);primaryKey"`
	Agenda     datatypes.JSONSlice[entities.MinutesAgendaItem] `gorm:"type:jsonb;not null"`
	Decisions  datatypes.JSONSlice[entities.Decision]          `gorm:"type:jsonb;not null"`
	ActionPlan datatypes.JSONSlice[entities.ActionItem]        `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time
}

func (minutesRow) TableName() string { return "minutes" }

func newMinutesRow(m *entities.Minutes) *minutesRow {
	return &minutesRow{
		MeetingID:  m.MeetingID,
		Name:       entities.MinutesDocumentName,
		Agenda:     datatypes.JSONSlice[entities.MinutesAgendaItem](nonNil(m.Agenda)),
		Decisions:  datatypes.JSONSlice[entities.Decision](nonNil(m.Decisions)),
		ActionPlan: datatypes.JSONSlice[entities.ActionItem](nonNil(m.ActionPlan)),
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *minutesRow) toEntity() *entities.Minutes {
	return &entities.Minutes{
		MeetingID:  r.MeetingID,
		Name:       r.Name,
		Agenda:     nonNil([]entities.MinutesAgendaItem(r.Agenda)),
		Decisions:  nonNil([]entities.Decision(r.Decisions)),
		ActionPlan: nonNil([]entities.ActionItem(r.ActionPlan)),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

// feedbackRow maps the feedbacks table
type feedbackRow struct {
	ID        string                                      `gorm:"type:uuid;primaryKey"`
	MeetingID string                                      `gorm:"type:uuid;not null;index"`
	Message   string                                      `gorm:"type:text;not null"`
	Detail    datatypes.JSONType[entities.FeedbackDetail] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (feedbackRow) TableName() string { return "feedbacks" }

func newFeedbackRow(f *entities.Feedback) *feedbackRow {
	return &feedbackRow{
		ID:        f.ID,
		MeetingID: f.MeetingID,
		Message:   f.Message,
		Detail:    datatypes.NewJSONType(f.Detail),
		CreatedAt: f.CreatedAt,
	}
}

func (r *feedbackRow) toEntity() *entities.Feedback {
	return &entities.Feedback{
		ID:        r.ID,
		MeetingID: r.MeetingID,
		Message:   r.Message,
		Detail:    r.Detail.Data(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
