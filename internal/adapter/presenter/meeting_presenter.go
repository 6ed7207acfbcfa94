package presenter

import (
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MeetingResponse{
		ID:           m.ID,
		Name:         m.Name,
		Purpose:      m.Purpose,
		StartDate:    m.StartDate,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Participants: m.Participants,
		Agenda:       toAgendaResponse(m.Agenda),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Participants == nil {
		response.Participants = []string{}
	}

	if r := m.InterventionRequest; r != nil {
		response.InterventionRequest = &meeting.InterventionRequestResponse{
			Status:    string(r.Status),
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}

	return response
}

func toAgendaResponse(agenda []entities.AgendaItem) []meeting.AgendaItemResponse {
	out := make([]meeting.AgendaItemResponse, len(agenda))
	for i, item := range agenda {
		out[i] = meeting.AgendaItemResponse{Topic: item.Topic, Duration: item.Duration}
	}
	return out
}

// ToAgendaItems converts request agenda items to entities
func ToAgendaItems(items []meeting.AgendaItemRequest) []entities.AgendaItem {
	out := make([]entities.AgendaItem, len(items))
	for i, item := range items {
		out[i] = entities.AgendaItem{Topic: item.Topic, Duration: item.Duration}
	}
	return out
}

// ToMessageResponse converts a Message entity to MessageResponse DTO
func ToMessageResponse(m *entities.Message) *meeting.MessageResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MessageResponse{
		ID:        m.ID,
		MeetingID: m.MeetingID,
		Speaker:   m.Speaker,
		Message:   m.Message,
		SpeakAt:   m.SpeakAt,
	}
	if m.Meta != nil {
		response.Meta = &meeting.MessageMetaResponse{Role: m.Meta.Role, Type: m.Meta.Type}
	}
	return response
}

// ToMessageList converts a slice of Message entities
func ToMessageList(messages []*entities.Message) []*meeting.MessageResponse {
	out := make([]*meeting.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = ToMessageResponse(m)
	}
	return out
}

// ToFeedbackDetailResponse converts the structured pipeline output
func ToFeedbackDetailResponse(d entities.FeedbackDetail) meeting.FeedbackDetailResponse {
	response := meeting.FeedbackDetailResponse{Summary: d.Summary}
	if d.Evaluation != nil {
		response.Evaluation = &meeting.EvaluationResponse{
			Engagement:   d.Evaluation.Engagement,
			Concreteness: d.Evaluation.Concreteness,
			Direction:    d.Evaluation.Direction,
		}
	}
	if d.Agenda != nil {
		response.Agenda = toAgendaResponse(d.Agenda)
	}
	return response
}

// ToFeedbackList converts archived feedback records
func ToFeedbackList(feedbacks []*entities.Feedback) *meeting.FeedbackListResponse {
	out := make([]*meeting.FeedbackRecordResponse, len(feedbacks))
	for i, f := range feedbacks {
		out[i] = &meeting.FeedbackRecordResponse{
			ID:        f.ID,
			Message:   f.Message,
			Detail:    ToFeedbackDetailResponse(f.Detail),
			CreatedAt: f.CreatedAt,
		}
	}
	return &meeting.FeedbackListResponse{Feedbacks: out}
}

// ToMinutesResponse converts a Minutes entity to MinutesResponse DTO
func ToMinutesResponse(m *entities.Minutes) *meeting.MinutesResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MinutesResponse{
		MeetingID:  m.MeetingID,
		Agenda:     make([]meeting.MinutesAgendaItemResponse, len(m.Agenda)),
		Decisions:  make([]meeting.DecisionResponse, len(m.Decisions)),
		ActionPlan: make([]meeting.ActionItemResponse, len(m.ActionPlan)),
		UpdatedAt:  m.UpdatedAt,
	}
	for i, a := range m.Agenda {
		response.Agenda[i] = meeting.MinutesAgendaItemResponse{ID: a.ID, Topic: a.Topic, Duration: a.Duration, Completed: a.Completed}
	}
	for i, d := range m.Decisions {
		response.Decisions[i] = meeting.DecisionResponse{ID: d.ID, Text: d.Text}
	}
	for i, a := range m.ActionPlan {
		response.ActionPlan[i] = meeting.ActionItemResponse{ID: a.ID, Task: a.Task, AssignedTo: a.AssignedTo, DueDate: a.DueDate}
	}
	return response
}
