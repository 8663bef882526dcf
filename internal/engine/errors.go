package engine

import (
	"errors"
	"fmt"
)

// AnalysisError represents a failure detected while serving an analyzer
// operation.
//
// Analysis errors include:
//   - Invalid argument: a caller-supplied parameter is out of range
//   - State out of sync: the undo log disagrees with the underlying data
//   - Column unavailable: sector aggregation asked for a column the
//     source data does not carry
//
// AnalysisError includes structured fields for diagnostics.
type AnalysisError struct {
	// Code identifies the error category.
	Code AnalysisErrorCode

	// Message is a human-readable description.
	Message string

	// Country identifies the affected country, when one applies.
	Country string

	// Year identifies the affected year, when one applies.
	Year int

	// Details contains additional context.
	Details map[string]string
}

// AnalysisErrorCode categorizes analysis errors.
type AnalysisErrorCode string

const (
	// ErrCodeInvalidArgument indicates a caller-supplied parameter is invalid.
	ErrCodeInvalidArgument AnalysisErrorCode = "INVALID_ARGUMENT"

	// ErrCodeStateOutOfSync indicates the undo log references data that is
	// no longer present. This is an internal invariant breach, not a miss.
	ErrCodeStateOutOfSync AnalysisErrorCode = "STATE_OUT_OF_SYNC"

	// ErrCodeColumnUnavailable indicates the requested categorical column
	// does not exist in the loaded data. A capability gap, not a fault.
	ErrCodeColumnUnavailable AnalysisErrorCode = "COLUMN_UNAVAILABLE"
)

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Country != "" && e.Year != 0 {
		return fmt.Sprintf("%s: %s (country=%s, year=%d)", e.Code, e.Message, e.Country, e.Year)
	}
	if e.Country != "" {
		return fmt.Sprintf("%s: %s (country=%s)", e.Code, e.Message, e.Country)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidArgument returns true if the error is an invalid-argument error.
// Uses errors.As to handle wrapped errors.
func IsInvalidArgument(err error) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeInvalidArgument
	}
	return false
}

// IsStateOutOfSync returns true if the error reports an undo-log
// inconsistency. Uses errors.As to handle wrapped errors.
func IsStateOutOfSync(err error) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeStateOutOfSync
	}
	return false
}

// IsColumnUnavailable returns true if the error reports a missing
// categorical column. Uses errors.As to handle wrapped errors.
func IsColumnUnavailable(err error) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeColumnUnavailable
	}
	return false
}

// NewInvalidArgumentError creates an AnalysisError for a bad parameter.
func NewInvalidArgumentError(message string) *AnalysisError {
	return &AnalysisError{
		Code:    ErrCodeInvalidArgument,
		Message: message,
	}
}

// NewOutOfSyncError creates an AnalysisError for an undo-log inconsistency.
func NewOutOfSyncError(message, country string, year int, emission float64) *AnalysisError {
	return &AnalysisError{
		Code:    ErrCodeStateOutOfSync,
		Message: message,
		Country: country,
		Year:    year,
		Details: map[string]string{
			"emission": fmt.Sprintf("%g", emission),
		},
	}
}

// NewColumnUnavailableError creates an AnalysisError for a missing column.
func NewColumnUnavailableError(column string) *AnalysisError {
	if column == "" {
		return &AnalysisError{
			Code:    ErrCodeColumnUnavailable,
			Message: "no categorical column specified",
		}
	}
	return &AnalysisError{
		Code:    ErrCodeColumnUnavailable,
		Message: fmt.Sprintf("no categorical column named %q in source data", column),
		Details: map[string]string{"column": column},
	}
}
