package store

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound is returned when no run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// QueryOpts configures history queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // created_at >= From
	To    time.Time // created_at <= To
}

// RunData captures one generation run.
type RunData struct {
	BankPath string
	Seed     uint64
	Versions int
	MCQ      int
	Essay    int
	Levels   map[string]int

	// Selected holds the question ids of each version in stored order.
	Selected [][]string
}

// RunRecord is a persisted run.
type RunRecord struct {
	ID        string
	Sequence  int64
	CreatedAt time.Time
	RunData
}

// RunRepo records and queries generation runs.
type RunRepo interface {
	// AppendRun stores a run and returns its id.
	AppendRun(ctx context.Context, data RunData) (string, error)

	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error)

	// GetRun returns the run whose id equals or uniquely starts with id.
	// Returns ErrRunNotFound if nothing matches.
	GetRun(ctx context.Context, id string) (*RunRecord, error)
}
