package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "survey.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSubmissionAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	// Empty log.
	recs, err := repo.QuerySubmissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query (empty): %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}

	before := time.Now().Add(-time.Second)
	id1, err := repo.AppendSubmission(ctx, SubmissionData{
		SurveyID:   1,
		Result:     "A,B,C",
		Status:     StatusSent,
		HTTPStatus: 201,
	})
	if err != nil {
		t.Fatalf("append #1: %v", err)
	}
	id2, err := repo.AppendSubmission(ctx, SubmissionData{
		SurveyID:     2,
		Result:       "D",
		Status:       StatusFailed,
		ErrorMessage: "connection refused",
	})
	if err != nil {
		t.Fatalf("append #2: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", id1, id2)
	}

	recs, err = repo.QuerySubmissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	// Newest first.
	if recs[0].ID != id2 || recs[1].ID != id1 {
		t.Errorf("order = [%s %s], want [%s %s]", recs[0].ID, recs[1].ID, id2, id1)
	}

	got := recs[1]
	if got.SurveyID != 1 || got.Result != "A,B,C" || got.Status != StatusSent || got.HTTPStatus != 201 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Timestamp.Before(before) {
		t.Errorf("timestamp %v earlier than %v", got.Timestamp, before)
	}
	if recs[0].ErrorMessage != "connection refused" {
		t.Errorf("ErrorMessage = %q", recs[0].ErrorMessage)
	}
}

func TestSubmissionQueryFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		surveyID := 1 + i%2
		if _, err := repo.AppendSubmission(ctx, SubmissionData{SurveyID: surveyID, Status: StatusSent}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := repo.QuerySubmissions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("limit: got %d records, want 2", len(recs))
	}

	recs, err = repo.QuerySubmissions(ctx, QueryOpts{SurveyID: 2})
	if err != nil {
		t.Fatalf("query survey: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("survey filter: got %d records, want 2", len(recs))
	}
	for _, r := range recs {
		if r.SurveyID != 2 {
			t.Errorf("unexpected survey %d", r.SurveyID)
		}
	}
}

func TestSubmissionClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SubmissionRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.AppendSubmission(ctx, SubmissionData{SurveyID: 1, Status: StatusSent}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d, want 3", n)
	}

	recs, err := repo.QuerySubmissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty log after clear, got %d", len(recs))
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("SURVEY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "survey", "survey.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}

	override := filepath.Join(dir, "custom", "x.db")
	t.Setenv("SURVEY_DB", override)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("override path: %v", err)
	}
	if p != override {
		t.Errorf("path = %q, want %q", p, override)
	}
}
