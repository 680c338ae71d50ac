package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid application status transition")

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func (s Status) Final() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// Application is a candidate's application to a posting. MatchScore is
// written once by the recorder and never recomputed.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	MatchScore  int
	Status      Status
	CoverLetter *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var transitions = map[Status][]Status{
	StatusPending:     {StatusReviewing, StatusShortlisted, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusReviewing:   {StatusShortlisted, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusShortlisted: {StatusAccepted, StatusRejected, StatusWithdrawn},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (a *Application) Transition(next Status, now time.Time) error {
	if !next.Valid() || !CanTransition(a.Status, next) {
		return ErrInvalidTransition
	}
	a.Status = next
	a.UpdatedAt = now.UTC()
	return nil
}
