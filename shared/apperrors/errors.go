package apperrors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeRemote      = "REMOTE_ERROR"
	CodeEmptyResult = "EMPTY_RESULT"
)

// AppError is the common base of every error kind surfaced to the user.
type AppError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ValidationError reports missing or malformed user input.
type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// RemoteError reports a backend call whose response carried an error
// descriptor or that failed in transit.
type RemoteError struct {
	*AppError
	Service   string
	Operation string
}

func NewRemoteError(message, service, operation string, cause error) *RemoteError {
	return &RemoteError{
		AppError: &AppError{
			Message: message,
			Code:    CodeRemote,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// EmptyResultError reports a playlist that resolved to zero items.
type EmptyResultError struct {
	*AppError
	PlaylistID string
}

func NewEmptyResultError(message, playlistID string) *EmptyResultError {
	return &EmptyResultError{
		AppError: &AppError{
			Message: message,
			Code:    CodeEmptyResult,
			Context: map[string]any{
				"playlist_id": playlistID,
			},
		},
		PlaylistID: playlistID,
	}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsRemote(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}

func IsEmptyResult(err error) bool {
	var target *EmptyResultError
	return errors.As(err, &target)
}

// UserMessage renders err the way the CLI and HTTP surface show it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	var empty *EmptyResultError
	if errors.As(err, &empty) {
		return empty.Message
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		return fmt.Sprintf("An error occurred: %s", remote.Error())
	}

	return fmt.Sprintf("An error occurred: %v", err)
}
