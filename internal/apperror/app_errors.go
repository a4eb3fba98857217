package apperror

import "errors"

var (
	ErrNoWords         = errors.New("word store is empty")
	ErrUnknownGame     = errors.New("unknown game")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidPayload  = errors.New("invalid payload")
)
