package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind labels an error category so clients can tell user-correctable
// conditions apart from server-side failures.
type ErrorKind string

const (
	KindSessionNotFound  ErrorKind = "SESSION_NOT_FOUND"
	KindNoDocuments      ErrorKind = "NO_DOCUMENTS"
	KindBadRequest       ErrorKind = "BAD_REQUEST"
	KindAnswerGeneration ErrorKind = "ANSWER_GENERATION"
	KindInternal         ErrorKind = "INTERNAL"
)

// AppError is the error variant services return upward. The middleware maps
// it to an HTTP status and a JSON body; Err carries the underlying cause for
// logs, never for clients.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewSessionNotFound() *AppError {
	return &AppError{
		Kind:    KindSessionNotFound,
		Status:  fiber.StatusNotFound,
		Message: "session not found",
	}
}

func NewNoDocuments() *AppError {
	return &AppError{
		Kind:    KindNoDocuments,
		Status:  fiber.StatusBadRequest,
		Message: "no documents uploaded for this session",
	}
}

func NewBadRequest(message string) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

func NewAnswerGeneration(err error) *AppError {
	return &AppError{
		Kind:    KindAnswerGeneration,
		Status:  fiber.StatusBadGateway,
		Message: "failed to generate an answer",
		Err:     err,
	}
}

func NewInternal(message string, err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Status:  fiber.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}
