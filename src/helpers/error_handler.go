package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type FundamentalsError struct {
	Message string
	Cause   error
}

func (e *FundamentalsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FundamentalsError) Unwrap() error {
	return e.Cause
}

// ErrNoData is the cause attached to a FetchError when the provider answered
// but the record was empty.
var ErrNoData = errors.New("no data for ticker")

// Distinct error types for errors.As
type ConfigurationError struct{ FundamentalsError }
type ValidationError struct{ FundamentalsError }

// FetchError covers provider unreachable, unknown ticker and empty payloads.
type FetchError struct {
	FundamentalsError
	Ticker string
}

// WriteError covers any filesystem failure while appending the row.
type WriteError struct {
	FundamentalsError
	Path string
}

// -----------------------------------------------------------------------------

func NewFetchError(ticker string, cause error) *FetchError {
	return &FetchError{
		FundamentalsError: FundamentalsError{Message: fmt.Sprintf("fetch %s failed", ticker), Cause: cause},
		Ticker:            ticker,
	}
}

func NewWriteError(path string, cause error) *WriteError {
	return &WriteError{
		FundamentalsError: FundamentalsError{Message: fmt.Sprintf("write %s failed", path), Cause: cause},
		Path:              path,
	}
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{FundamentalsError{Message: message, Cause: cause}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{FundamentalsError{Message: message}}
}

// -----------------------------------------------------------------------------
// Exit codes
// -----------------------------------------------------------------------------

const (
	ExitOK          = 0
	ExitConfigError = 1
	ExitUsageError  = 2
	ExitFetchError  = 3
	ExitWriteError  = 4
)

// ExitCode maps an error returned by a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var fetchErr *FetchError
	var writeErr *WriteError
	var validationErr *ValidationError
	var configErr *ConfigurationError

	switch {
	case errors.As(err, &fetchErr):
		return ExitFetchError
	case errors.As(err, &writeErr):
		return ExitWriteError
	case errors.As(err, &validationErr):
		return ExitUsageError
	case errors.As(err, &configErr):
		return ExitConfigError
	default:
		return ExitConfigError
	}
}
