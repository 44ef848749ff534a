package student

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("student not found")

// Student is a read-only snapshot of the profile fields the matching
// engine consumes. Profile CRUD lives outside the engine.
type Student struct {
	ID              uuid.UUID
	Skills          []string
	EducationField  *string
	ExperienceYears int
	Location        *string
	Preferences     Preferences
	CreatedAt       time.Time
}

type Preferences struct {
	Industries   []string
	Locations    []string
	CompanySizes []string
}
