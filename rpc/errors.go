package rpc

import (
	"errors"

	"rewardpoints/native/points"
)

var (
	errAuthNotConfigured = errors.New("rpc auth token not configured")
	errMissingBearer     = errors.New("missing bearer token")
	errInvalidToken      = errors.New("invalid bearer token")
)

// Engine failure codes. Each sentinel maps to a stable code so callers can
// dispatch without parsing messages.
const (
	codeEngineUnauthorized        = -32100
	codeEngineInvalidIdentity     = -32101
	codeEngineInvalidID           = -32102
	codeEngineInvalidUser         = -32103
	codeEngineInvalidState        = -32104
	codeEngineAlreadyExists       = -32105
	codeEngineInvalidAmount       = -32106
	codeEngineInsufficientBalance = -32107
	codeEngineInvalidOperation    = -32108
	codeEnginePaused              = -32109
)

func engineError(err error) *RPCError {
	code := codeServerError
	switch {
	case errors.Is(err, points.ErrUnauthorized):
		code = codeEngineUnauthorized
	case errors.Is(err, points.ErrInvalidIdentity):
		code = codeEngineInvalidIdentity
	case errors.Is(err, points.ErrInvalidID):
		code = codeEngineInvalidID
	case errors.Is(err, points.ErrInvalidUser):
		code = codeEngineInvalidUser
	case errors.Is(err, points.ErrInvalidState):
		code = codeEngineInvalidState
	case errors.Is(err, points.ErrAlreadyExists):
		code = codeEngineAlreadyExists
	case errors.Is(err, points.ErrInvalidAmount):
		code = codeEngineInvalidAmount
	case errors.Is(err, points.ErrInsufficientBalance):
		code = codeEngineInsufficientBalance
	case errors.Is(err, points.ErrInvalidOperation):
		code = codeEngineInvalidOperation
	case errors.Is(err, points.ErrPaused):
		code = codeEnginePaused
	}
	return &RPCError{Code: code, Message: err.Error()}
}

func invalidParams(message string) *RPCError {
	return &RPCError{Code: codeInvalidParams, Message: message}
}
