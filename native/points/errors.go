package points

import "errors"

var (
	ErrUnauthorized        = errors.New("points: unauthorized")
	ErrInvalidIdentity     = errors.New("points: invalid identity")
	ErrInvalidID           = errors.New("points: unknown id")
	ErrInvalidUser         = errors.New("points: unknown user")
	ErrInvalidState        = errors.New("points: invalid state")
	ErrAlreadyExists       = errors.New("points: already exists")
	ErrInvalidAmount       = errors.New("points: invalid amount")
	ErrInsufficientBalance = errors.New("points: insufficient balance")
	ErrInvalidOperation    = errors.New("points: invalid operation")
	ErrPaused              = errors.New("points: paused")
)
