package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type matchCacheKeyInput struct {
	SubjectID string  `json:"subject_id"`
	Direction string  `json:"direction"`
	Limit     int     `json:"limit"`
	MinScore  float64 `json:"min_score"`
	Scope     string  `json:"scope"`
	PostingID string  `json:"posting_id"`
}

// matchesCacheKey hashes every parameter that changes the result shape,
// so any parameter change is a miss. The subject prefix keeps targeted
// invalidation possible via pattern delete.
func matchesCacheKey(side string, subjectID uuid.UUID, limit int, minScore float64, scope string, postingID *uuid.UUID) string {
	in := matchCacheKeyInput{
		SubjectID: subjectID.String(),
		Direction: side,
		Limit:     limit,
		MinScore:  minScore,
		Scope:     strings.ToLower(strings.TrimSpace(scope)),
	}
	if postingID != nil {
		in.PostingID = postingID.String()
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "matches:" + side + ":" + subjectID.String() + ":" + hex.EncodeToString(sum[:])
}

func matchesCachePattern(side string, subjectID uuid.UUID) string {
	return "matches:" + side + ":" + subjectID.String() + ":*"
}
