package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound = errors.New("project not found")

	// ErrGenerationUnavailable means the AI backend produced nothing usable
	// (network down, quota exhausted, zero parseable drafts). Triggers a full
	// template fallback, never surfaces to the end caller.
	ErrGenerationUnavailable = errors.New("generation backend unavailable")

	// ErrGenerationDegraded means the AI backend returned fewer valid drafts
	// than requested. The partial result accompanies the error; the caller
	// pads the remainder from the template catalog.
	ErrGenerationDegraded = errors.New("generation returned a partial result")
)

// ValidationError reports a malformed request field. These are the only
// errors surfaced to callers verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
