package usecase

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMatchesCacheKey_ParamSensitivity(t *testing.T) {
	subjectID := uuid.New()

	base := matchesCacheKey("student", subjectID, 10, 0, "jobs", nil)
	same := matchesCacheKey("student", subjectID, 10, 0, "jobs", nil)
	if base != same {
		t.Fatalf("identical params must produce identical keys")
	}

	variants := []string{
		matchesCacheKey("student", subjectID, 20, 0, "jobs", nil),
		matchesCacheKey("student", subjectID, 10, 50, "jobs", nil),
		matchesCacheKey("student", subjectID, 10, 0, "internships", nil),
		matchesCacheKey("company", subjectID, 10, 0, "jobs", nil),
		matchesCacheKey("student", uuid.New(), 10, 0, "jobs", nil),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d must produce a different key", i)
		}
	}

	postingID := uuid.New()
	withPosting := matchesCacheKey("company", subjectID, 10, 0, "", &postingID)
	withoutPosting := matchesCacheKey("company", subjectID, 10, 0, "", nil)
	if withPosting == withoutPosting {
		t.Fatalf("posting id must be part of the key")
	}
}

func TestMatchesCachePattern_CoversKeys(t *testing.T) {
	subjectID := uuid.New()
	key := matchesCacheKey("student", subjectID, 10, 0, "", nil)
	pattern := matchesCachePattern("student", subjectID)

	if !strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
		t.Fatalf("pattern %q must cover key %q", pattern, key)
	}
}
