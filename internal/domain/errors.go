package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownAngle       = errors.New("unknown marketing angle")
	ErrUnknownFormat      = errors.New("unknown ad format")
	ErrPlaybookIncomplete = errors.New("playbook product identity incomplete")
	ErrProviderFailure    = errors.New("provider failure")
	ErrNotRerenderable    = errors.New("generation cannot be re-rendered")
)
