package repository

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"talentlink/internal/database"
	"talentlink/internal/domain/posting"
)

func TestStudentRepository_ListByPostingRequirements_CaseInsensitiveSkillOverlap(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	db := &stubDB{query: func(query string, args ...any) (database.Rows, error) {
		gotQuery = query
		gotArgs = args
		return emptyRows{}, nil
	}}

	repo := NewPostgresStudentRepository(db)
	p := posting.Posting{RequiredSkills: []string{"Go", " SQL ", ""}}
	if _, err := repo.ListByPostingRequirements(context.Background(), p, 10); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	skills, ok := gotArgs[0].([]string)
	if !ok {
		t.Fatalf("expected []string skills argument, got %T", gotArgs[0])
	}
	if !reflect.DeepEqual(skills, []string{"go", "sql"}) {
		t.Fatalf("required skills must be lowered and trimmed, got %v", skills)
	}

	// Both sides of the overlap must be lowered: a student storing "Go"
	// has to match a posting requiring "go".
	if !strings.Contains(gotQuery, "lower(s)") || !strings.Contains(gotQuery, "unnest(skills)") {
		t.Fatalf("stored skills must be lowered before the overlap check, query: %s", gotQuery)
	}
}
