package usecase

import (
	"errors"
	"fmt"
)

// DomainError is a failure the caller can fix (bad input, unknown id). Maps to 4xx.
type DomainError struct {
	Code    string
	Message string
	Details []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps an infrastructure failure. Maps to 5xx.
type TechnicalError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TechnicalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "CANDIDATE_NOT_FOUND"
	CodeInvalidStage       = "INVALID_STAGE"
	CodeInvalidTemplate    = "INVALID_TEMPLATE"
	CodeInvalidFeature     = "INVALID_FEATURE"
	CodeAutomationDisabled = "AUTOMATION_DISABLED"
	CodeDatabase           = "DATABASE_ERROR"
	CodeQueue              = "QUEUE_ERROR"
)

func notFound(id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("candidate %s not found", id)}
}

func invalid(details []ValidationError) *DomainError {
	return &DomainError{Code: CodeValidation, Message: "validation failed", Details: details}
}

func dbError(op string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: op, Cause: err}
}
