package entities

import "errors"

// Domain errors
var (
	ErrInvalidSchedule = errors.New("invalid meeting schedule")
	ErrEmptyText       = errors.New("text must not be empty")
)
