package entities

import "time"

// InterventionStatus is the lifecycle state of an intervention request
type InterventionStatus string

const (
	InterventionStatusPending   InterventionStatus = "pending"
	InterventionStatusCompleted InterventionStatus = "completed"
)

// InterventionRequest is raised when the facilitator decides the meeting
// needs help and is completed once the participants let it speak.
type InterventionRequest struct {
	Status    InterventionStatus `json:"status" bson:"status"`
	Reason    string             `json:"reason" bson:"reason"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewInterventionRequest creates a pending request
func NewInterventionRequest(reason string, now time.Time) *InterventionRequest {
	now = now.UTC()
	return &InterventionRequest{
		Status:    InterventionStatusPending,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPending reports whether the request still awaits the participants
func (r *InterventionRequest) IsPending() bool {
	return r != nil && r.Status == InterventionStatusPending
}

// CoolingDown reports whether a completed request is younger than span
func (r *InterventionRequest) CoolingDown(now time.Time, span time.Duration) bool {
	if r == nil || r.Status != InterventionStatusCompleted {
		return false
	}
	return now.Sub(r.UpdatedAt) < span
}

// BlocksNewRequest reports whether a new intervention must not be considered
func (r *InterventionRequest) BlocksNewRequest(now time.Time, span time.Duration) bool {
	return r.IsPending() || r.CoolingDown(now, span)
}
