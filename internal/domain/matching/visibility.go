package matching

import (
	"strings"
	"time"

	"agri-match/internal/domain/job"

	"github.com/google/uuid"
)

// GraceWindow is how long an inactive posting stays in aggregate feeds.
const GraceWindow = 24 * time.Hour

// StatusAll requests the aggregate view.
const StatusAll = "all"

type ViewerKind int

const (
	ViewerPublic ViewerKind = iota
	ViewerOwner
	ViewerAdmin
)

func (k ViewerKind) String() string {
	switch k {
	case ViewerOwner:
		return "owner"
	case ViewerAdmin:
		return "admin"
	default:
		return "public"
	}
}

// Viewer is the identity a visibility or ranking query runs under.
// StatusFilter is "" for the default list, "all" for the aggregate view,
// or a concrete job status.
type Viewer struct {
	Kind         ViewerKind
	FarmID       uuid.UUID
	StatusFilter string
}

func PublicViewer() Viewer { return Viewer{Kind: ViewerPublic} }

func AdminViewer() Viewer { return Viewer{Kind: ViewerAdmin} }

func OwnerViewer(farmID uuid.UUID) Viewer { return Viewer{Kind: ViewerOwner, FarmID: farmID} }

func (v Viewer) WithStatus(filter string) Viewer {
	v.StatusFilter = strings.ToLower(strings.TrimSpace(filter))
	return v
}

// Owns reports whether the viewer is the farm that owns the posting.
func (v Viewer) Owns(p job.Posting) bool {
	return v.Kind == ViewerOwner && v.FarmID != uuid.Nil && v.FarmID == p.OwnerID
}

// CanManage reports whether the viewer may manage the posting and its applicants.
func (v Viewer) CanManage(p job.Posting) bool {
	return v.Kind == ViewerAdmin || v.Owns(p)
}

// IsVisible decides whether p is shown to v at instant now.
func IsVisible(p job.Posting, v Viewer, now time.Time) bool {
	if v.Owns(p) {
		return true
	}

	filter := v.StatusFilter
	switch {
	case v.Kind == ViewerAdmin && filter != "" && filter != StatusAll:
		return string(p.Status) == filter
	case filter == "", filter == StatusAll:
		// The default list and the aggregate view share one rule.
		return visibleInAggregate(p, now)
	default:
		// A specific status never gets the grace window.
		return string(p.Status) == filter
	}
}

func visibleInAggregate(p job.Posting, now time.Time) bool {
	if p.Status != job.StatusInactive {
		return true
	}
	return withinGrace(p, now)
}

// withinGrace treats a nil StatusChangedAt as never transitioned, which
// keeps legacy rows visible.
func withinGrace(p job.Posting, now time.Time) bool {
	if p.StatusChangedAt == nil {
		return true
	}
	return now.Sub(*p.StatusChangedAt) <= GraceWindow
}
