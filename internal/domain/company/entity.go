package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("company not found")

// Company is a read-only snapshot of the fields the matching engine
// consumes for candidate selection and scoring.
type Company struct {
	ID        uuid.UUID
	Industry  *string
	Size      *string
	Location  *string
	Skills    []string
	CreatedAt time.Time
}
