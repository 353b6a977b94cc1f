package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type runRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

const runColumns = `id, sequence, created_at, bank_path, seed, versions, mcq, essay, levels, selected`

func (r *runRepo) AppendRun(ctx context.Context, data RunData) (string, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return "", err
	}

	levels, err := json.Marshal(data.Levels)
	if err != nil {
		return "", fmt.Errorf("marshal levels: %w", err)
	}
	selected, err := json.Marshal(data.Selected)
	if err != nil {
		return "", fmt.Errorf("marshal selection: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		seqNum,
		r.now().UTC().Format(time.RFC3339Nano),
		data.BankPath,
		strconv.FormatUint(data.Seed, 10),
		data.Versions,
		data.MCQ,
		data.Essay,
		string(levels),
		string(selected),
	)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

func (r *runRepo) ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error) {
	var (
		where []string
		args  []any
	)
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UTC().Format(time.RFC3339Nano))
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UTC().Format(time.RFC3339Nano))
	}

	q := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *runRepo) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY sequence DESC LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var found []*RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if rec.ID == id {
			return rec, nil
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, ErrRunNotFound
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		rec                      RunRecord
		createdAt, seed          string
		levelsJSON, selectedJSON string
	)
	err := row.Scan(&rec.ID, &rec.Sequence, &createdAt, &rec.BankPath, &seed,
		&rec.Versions, &rec.MCQ, &rec.Essay, &levelsJSON, &selectedJSON)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := json.Unmarshal([]byte(levelsJSON), &rec.Levels); err != nil {
		return nil, fmt.Errorf("unmarshal levels: %w", err)
	}
	if err := json.Unmarshal([]byte(selectedJSON), &rec.Selected); err != nil {
		return nil, fmt.Errorf("unmarshal selection: %w", err)
	}
	return &rec, nil
}

// escapeLike escapes LIKE wildcards in a user-supplied prefix so they match
// literally under ESCAPE '\'.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
