package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
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

func sampleRun(bankPath string) RunData {
	return RunData{
		BankPath: bankPath,
		Seed:     18446744073709551615,
		Versions: 2,
		MCQ:      2,
		Essay:    1,
		Levels:   map[string]int{"NB": 1, "TH": 0, "VD": 0, "VDH": 0},
		Selected: [][]string{{"Q1", "Q2", "Q3"}, {"Q2", "Q4", "Q3"}},
	}
}

func TestAppendAndGetRun(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	id, err := repo.AppendRun(ctx, sampleRun("bank.txt"))
	if err != nil {
		t.Fatalf("AppendRun: %v", err)
	}

	got, err := repo.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Seed != 18446744073709551615 {
		t.Errorf("Seed = %d, want max uint64", got.Seed)
	}
	if got.Levels["NB"] != 1 {
		t.Errorf("Levels[NB] = %d, want 1", got.Levels["NB"])
	}
	if len(got.Selected) != 2 || got.Selected[1][1] != "Q4" {
		t.Errorf("Selected = %v", got.Selected)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	// Unique prefix lookup.
	byPrefix, err := repo.GetRun(ctx, id[:8])
	if err != nil {
		t.Fatalf("GetRun(prefix): %v", err)
	}
	if byPrefix.ID != id {
		t.Errorf("prefix lookup returned %q, want %q", byPrefix.ID, id)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.RunRepo().GetRun(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
}

func TestGetRun_WildcardsMatchLiterally(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	id, err := repo.AppendRun(ctx, sampleRun("bank.txt"))
	if err != nil {
		t.Fatalf("AppendRun: %v", err)
	}

	for _, prefix := range []string{"%", "_", id[:4] + "_", `\`} {
		if _, err := repo.GetRun(ctx, prefix); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("GetRun(%q) err = %v, want ErrRunNotFound", prefix, err)
		}
	}
	got, err := repo.GetRun(ctx, id[:5])
	if err != nil {
		t.Fatalf("GetRun(prefix): %v", err)
	}
	if got.ID != id {
		t.Errorf("prefix lookup returned %q, want %q", got.ID, id)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"abc":  "abc",
		"a%b":  `a\%b`,
		"a_b":  `a\_b`,
		`a\b`:  `a\\b`,
		"%_\\": `\%\_\\`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	repo := s.RunRepo()
	ctx := context.Background()

	for _, p := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := repo.AppendRun(ctx, sampleRun(p)); err != nil {
			t.Fatalf("AppendRun(%s): %v", p, err)
		}
	}

	runs, err := repo.ListRuns(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].BankPath != "c.txt" || runs[2].BankPath != "a.txt" {
		t.Errorf("order = %s, %s, %s", runs[0].BankPath, runs[1].BankPath, runs[2].BankPath)
	}
	if runs[0].Sequence <= runs[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", runs[0].Sequence, runs[1].Sequence)
	}

	limited, err := repo.ListRuns(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("ListRuns(limit): %v", err)
	}
	if len(limited) != 1 || limited[0].BankPath != "c.txt" {
		t.Errorf("limit 1 = %+v", limited)
	}

	ranged, err := repo.ListRuns(ctx, QueryOpts{From: base.Add(2 * time.Minute)})
	if err != nil {
		t.Fatalf("ListRuns(from): %v", err)
	}
	if len(ranged) != 2 {
		t.Errorf("from filter returned %d runs, want 2", len(ranged))
	}
}
