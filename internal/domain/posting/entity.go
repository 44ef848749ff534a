package posting

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("posting not found")

type Kind string

const (
	KindJob        Kind = "job"
	KindInternship Kind = "internship"
)

func (k Kind) Valid() bool {
	return k == KindJob || k == KindInternship
}

// Posting is a read-only snapshot of a job or internship opening. The
// engine uses its requirements to scope candidate selection when a
// specific posting is the subject.
type Posting struct {
	ID                 uuid.UUID
	CompanyID          uuid.UUID
	Kind               Kind
	RequiredSkills     []string
	EducationField     *string
	MinExperienceYears int
	Location           *string
	Active             bool
	ExpiresAt          *time.Time
}

func (p Posting) Open(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}
