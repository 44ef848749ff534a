package match

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("match not found")

type Type string

const (
	TypeAI    Type = "ai"
	TypeBasic Type = "basic"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusViewed      Status = "viewed"
	StatusShortlisted Status = "shortlisted"
	StatusContacted   Status = "contacted"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusViewed, StatusShortlisted, StatusContacted, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

type Actor string

const (
	ActorStudent Actor = "student"
	ActorCompany Actor = "company"
	ActorSystem  Actor = "system"
)

func (a Actor) Valid() bool {
	switch a {
	case ActorStudent, ActorCompany, ActorSystem:
		return true
	}
	return false
}

// Component holds the breakdown for one scored signal. A signal absent
// from the components map was not evaluated for the pair.
type Component struct {
	Score        float64  `json:"score"`
	MatchedItems []string `json:"matched_items"`
	MissingItems []string `json:"missing_items"`
}

type Insights struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
}

type Interaction struct {
	Action      string         `json:"action"`
	PerformedBy Actor          `json:"performed_by"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

type Match struct {
	ID           uuid.UUID
	StudentID    uuid.UUID
	CompanyID    uuid.UUID
	MatchScore   int
	Components   map[string]Component
	MatchType    Type
	Insights     Insights
	Status       Status
	Interactions []Interaction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreatedEntry is the single interaction every new Match starts with.
func CreatedEntry(metadata map[string]any) Interaction {
	return Interaction{
		Action:      "created",
		PerformedBy: ActorSystem,
		Metadata:    metadata,
		Timestamp:   time.Now().UTC(),
	}
}

// StatusEntry is the interaction recorded for an explicit status change.
func StatusEntry(status Status, by Actor, metadata map[string]any) Interaction {
	return Interaction{
		Action:      "status_" + string(status),
		PerformedBy: by,
		Metadata:    metadata,
		Timestamp:   time.Now().UTC(),
	}
}
