package job

import (
	"errors"
	"time"

	"agri-match/internal/domain/profile"

	"github.com/google/uuid"
)

var ErrUnknownStatus = errors.New("unknown job status")

type Type string

const (
	TypeFarmHand      Type = "farm_hand"
	TypeFarmManager   Type = "farm_manager"
	TypeIntern        Type = "intern"
	TypeNSS           Type = "nss"
	TypeDataCollector Type = "data_collector"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusInactive Status = "inactive"
	StatusFilled   Status = "filled"
	StatusClosed   Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusInactive, StatusFilled, StatusClosed:
		return true
	default:
		return false
	}
}

// RequiredInstitution is what a posting asks for; "any" accepts every institution type.
type RequiredInstitution string

const (
	RequireUniversity      RequiredInstitution = "university"
	RequireTrainingCollege RequiredInstitution = "training_college"
	RequireAnyInstitution  RequiredInstitution = "any"
)

type Posting struct {
	ID                      uuid.UUID
	OwnerID                 uuid.UUID
	Title                   string
	Location                string
	JobType                 Type
	RequiredSpecialization  *profile.Specialization
	RequiredInstitutionType *RequiredInstitution
	Status                  Status
	StatusChangedAt         *time.Time
	CreatedAt               time.Time
}

// Transition moves the posting to next and stamps StatusChangedAt.
// Re-applying the current status leaves the timestamp alone so the
// inactive grace window is not restarted.
func (p *Posting) Transition(next Status, now time.Time) error {
	if !next.Valid() {
		return ErrUnknownStatus
	}
	if p.Status == next {
		return nil
	}
	at := now.UTC()
	p.Status = next
	p.StatusChangedAt = &at
	return nil
}
