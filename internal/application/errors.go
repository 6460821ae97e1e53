package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/date-app-backend/internal/domain/repository"
)

var (
	ErrInvalidCredentials = repository.ErrInvalidCredentials
	ErrIdentityNotFound   = repository.ErrIdentityNotFound
	ErrImagesUnavailable  = errors.New("image storage not configured")
)

// ValidationError rejects a request before any store mutation. Details maps
// JSON field names to messages.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for f, msg := range e.Details {
		parts = append(parts, f+" "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PartialCascadeFailure lists the cascade steps that did not complete. The
// account is still considered deleted; a re-run finishes the rest.
type PartialCascadeFailure struct {
	UserID string
	Failed []StepResult
}

func (e *PartialCascadeFailure) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, s := range e.Failed {
		parts = append(parts, fmt.Sprintf("%s: %v", s.Step, s.Err))
	}
	return fmt.Sprintf("account %s: %d cascade step(s) failed: %s", e.UserID, len(e.Failed), strings.Join(parts, "; "))
}

func (e *PartialCascadeFailure) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, s := range e.Failed {
		out = append(out, s.Err)
	}
	return out
}
