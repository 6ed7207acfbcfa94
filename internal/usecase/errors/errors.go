package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Meeting errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidSchedule = errors.New("invalid meeting schedule")
)

// Facilitator errors
var (
	ErrEmptyFeedback    = errors.New("facilitator produced no message")
	ErrAIAnalysisFailed = errors.New("facilitator model call failed")
	ErrAIUnavailable    = errors.New("facilitator model unavailable")
)

// Integration errors
var (
	ErrStorageDisabled       = errors.New("object storage is not configured")
	ErrStorageFailed         = errors.New("object storage failed")
	ErrTranscriptionDisabled = errors.New("transcription is not configured")
	ErrTranscriptionFailed   = errors.New("transcription failed")
	ErrNoSpeech              = errors.New("no speech found in audio")
)

// QueryError is a repository failure of a use case step
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return "failed to " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Query wraps a repository failure of op
func Query(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}
