package usecase

import (
	"context"
	"errors"
	"fmt"

	"agri-match/internal/repository"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
	ErrJobNotApplicable     = errors.New("job is not accepting applications")
	ErrProfileNotVerified   = errors.New("profile must be verified before applying")
	ErrNotCandidate         = errors.New("farm accounts cannot act as candidates")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrInvariantViolation   = errors.New("invariant violation")
)

// storeError classifies a repository error. Cancellation by the caller is
// passed through untouched; anything unrecognised is a transient store
// failure the caller may retry.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
