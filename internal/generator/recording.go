package generator

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/store"
)

// seeded is implemented by generators that can report their seed.
type seeded interface {
	Seed() uint64
}

// RecordingGenerator is a decorator that records every successful run in
// the history store.
type RecordingGenerator struct {
	inner    Generator
	repo     store.RunRepo
	bankPath string

	mu     sync.Mutex
	lastID string
}

// WithRecording wraps a Generator with run recording.
func WithRecording(g Generator, repo store.RunRepo, bankPath string) *RecordingGenerator {
	return &RecordingGenerator{inner: g, repo: repo, bankPath: bankPath}
}

func (r *RecordingGenerator) Generate(ctx context.Context, idx *bank.Index, req Request) ([]Version, error) {
	versions, err := r.inner.Generate(ctx, idx, req)
	if err != nil {
		return nil, err
	}

	data := store.RunData{
		BankPath: r.bankPath,
		Versions: req.Versions,
		MCQ:      req.MCQ,
		Essay:    req.Essay,
		Levels:   make(map[string]int, len(bank.AllLevels())),
		Selected: make([][]string, len(versions)),
	}
	if s, ok := r.inner.(seeded); ok {
		data.Seed = s.Seed()
	}
	for _, l := range bank.AllLevels() {
		data.Levels[string(l)] = req.Levels[l]
	}
	for i, v := range versions {
		data.Selected[i] = v.IDs()
	}

	// Record the run but don't fail generation if recording fails.
	id, logErr := r.repo.AppendRun(ctx, data)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record generation run: %v\n", logErr)
		return versions, nil
	}

	r.mu.Lock()
	r.lastID = id
	r.mu.Unlock()
	return versions, nil
}

// LastRunID returns the id of the most recently recorded run, or "" if
// nothing has been recorded.
func (r *RecordingGenerator) LastRunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastID
}
