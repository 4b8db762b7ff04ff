package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrLockedPeriod is returned when a write targets a date on or before the tenant's lock date.
var ErrLockedPeriod = errors.New("period is locked")

// ErrEmptyDocument is returned when a source document has nothing to post.
var ErrEmptyDocument = errors.New("document has no lines")

// ErrIncompleteConfiguration is returned when a required ledger account cannot be resolved.
var ErrIncompleteConfiguration = errors.New("incomplete ledger configuration")

// ErrInsufficientInventory is returned by the inventory collaborator when stock would go negative.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrStorageFailure wraps any persistence error. The surrounding transaction has been rolled back.
var ErrStorageFailure = errors.New("storage failure")

// ErrUnbalanced is returned when a journal's debits and credits differ.
var ErrUnbalanced = errors.New("journal does not balance")

// ErrConflict is returned when the stored state changed between reading and writing it.
var ErrConflict = errors.New("concurrent modification")

// AppError carries an HTTP status, an error kind (one of the sentinels above) and a
// human readable message alongside the underlying cause.
type AppError struct {
	Code    int
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against its kind.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewAppError builds an AppError whose kind is derived from the status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Kind: kindForStatus(code), Message: message, Err: err}
}

// NewNotFoundError reports a missing entity, e.g. NewNotFoundError("journal 42").
func NewNotFoundError(what string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: ErrNotFound, Message: what + " not found"}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: ErrValidation, Message: message}
}

func NewLockedPeriodError(date time.Time) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrLockedPeriod,
		Message: fmt.Sprintf("Cannot post to locked period (%s)", date.Format(time.DateOnly)),
	}
}

func NewEmptyDocumentError(document string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    ErrEmptyDocument,
		Message: fmt.Sprintf("%s has nothing to post", document),
	}
}

func NewIncompleteConfigurationError(detail string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    ErrIncompleteConfiguration,
		Message: "Ledger accounts are not configured: " + detail,
	}
}

func NewInsufficientInventoryError(itemID int64, onHand, requested string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    ErrInsufficientInventory,
		Message: fmt.Sprintf("Insufficient stock for item %d (on hand %s, requested %s)", itemID, onHand, requested),
	}
}

func NewUnbalancedError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Kind: ErrUnbalanced, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: ErrConflict, Message: message}
}

// NewStorageError wraps a persistence failure.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Kind: ErrStorageFailure, Message: message, Err: err}
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrDuplicate
	default:
		return ErrStorageFailure
	}
}

var kinds = []struct {
	err    error
	name   string
	status int
}{
	{ErrNotFound, "not_found", http.StatusNotFound},
	{ErrLockedPeriod, "locked_period", http.StatusConflict},
	{ErrEmptyDocument, "empty_document", http.StatusUnprocessableEntity},
	{ErrIncompleteConfiguration, "incomplete_configuration", http.StatusUnprocessableEntity},
	{ErrInsufficientInventory, "insufficient_inventory", http.StatusConflict},
	{ErrUnbalanced, "unbalanced", http.StatusUnprocessableEntity},
	{ErrValidation, "validation_error", http.StatusBadRequest},
	{ErrDuplicate, "duplicate", http.StatusConflict},
	{ErrConflict, "conflict", http.StatusConflict},
	{ErrStorageFailure, "storage_failure", http.StatusInternalServerError},
}

// KindOf returns the machine readable name of the error's kind, "internal_error" if unknown.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal_error"
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// MessageOf returns the outermost AppError message, or err.Error() for plain errors.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
