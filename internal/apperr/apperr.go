package apperr

import (
	"errors"
	"fmt"
	"os"

	"github.com/lruiz/growthspace/internal/logger"
)

var (
	// ErrNotFound is returned when an operation targets a habit id that
	// does not exist
	ErrNotFound = errors.New("habit not found")

	// ErrValidation is returned when a required field is missing, e.g. an
	// empty habit name. Store operations refuse the mutation rather than
	// surfacing this to the terminal.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyResponse is returned when the AI collaborator produced no
	// content for a call that requires some
	ErrEmptyResponse = errors.New("empty AI response")

	// ErrUnavailable is returned when an external collaborator is
	// unreachable or misconfigured. Call sites degrade to a fallback value
	// instead of propagating it.
	ErrUnavailable = errors.New("collaborator unavailable")
)

// Format prefixes an error message for terminal output
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a message built from a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op so callers can pass errors through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a message built from a format string
func Fatalf(format string, args ...interface{}) {
	logger.Error("command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
