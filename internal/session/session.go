// Package session owns the state tied to one loaded question bank: the
// parsed questions, their index and the attachment registry. Loading a new
// bank replaces all of it at once.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/examforge/internal/attach"
	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/generator"
	"github.com/abhisek/examforge/internal/render"
)

// ErrNoBank is returned by operations that need a loaded bank.
var ErrNoBank = errors.New("no question bank loaded")

// Session is the explicit replacement for process-wide bank state. A
// Session is not safe for concurrent use; generation runs read the Index
// only and may run while no Replace is in progress.
type Session struct {
	parser *bank.Parser

	// BankPath is the file the current bank was loaded from.
	BankPath string

	// Questions holds the records in file order.
	Questions []bank.Question

	// Report describes how the current bank was parsed.
	Report *bank.ParseReport

	// Index groups Questions by level and type.
	Index *bank.Index

	// Attachments maps question ids of the current bank to files.
	Attachments *attach.Registry

	// LoadedAt is when the current bank was loaded.
	LoadedAt time.Time

	now func() time.Time
}

// New creates an empty session that parses banks with p. A nil parser
// uses the default strategies.
func New(p *bank.Parser) *Session {
	if p == nil {
		p = bank.NewParser(bank.DefaultParserConfig())
	}
	return &Session{parser: p, now: time.Now}
}

// Open creates a session and loads the bank at path.
func Open(path string, p *bank.Parser) (*Session, error) {
	s := New(p)
	if err := s.Replace(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace loads the bank at path. On success the previous questions, index
// and attachments are discarded. On failure, including an empty bank, the
// session is left unchanged.
func (s *Session) Replace(path string) error {
	qs, report, err := s.parser.ParseFile(path)
	if err != nil {
		return err
	}

	s.BankPath = path
	s.Questions = qs
	s.Report = report
	s.Index = bank.BuildIndex(qs)
	s.Attachments = attach.NewRegistry()
	s.LoadedAt = s.now()
	return nil
}

// Close discards the loaded bank.
func (s *Session) Close() {
	s.BankPath = ""
	s.Questions = nil
	s.Report = nil
	s.Index = nil
	s.Attachments = nil
	s.LoadedAt = time.Time{}
}

// Loaded reports whether a bank is loaded.
func (s *Session) Loaded() bool {
	return s.Index != nil
}

// BaseName returns the bank file name without directory and extension,
// used to name exported files.
func (s *Session) BaseName() string {
	if s.BankPath == "" {
		return ""
	}
	name := filepath.Base(s.BankPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Attach associates paths with ids and returns the ids that do not exist
// in the current bank. Unknown ids are still registered.
func (s *Session) Attach(ids, paths []string) ([]string, error) {
	if !s.Loaded() {
		return nil, ErrNoBank
	}
	known := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		known[q.ID] = true
	}
	var unknown []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" && !known[id] {
			unknown = append(unknown, id)
		}
	}
	s.Attachments.Assign(ids, paths)
	return unknown, nil
}

// Generate runs g against the current index.
func (s *Session) Generate(ctx context.Context, g generator.Generator, req generator.Request) ([]generator.Version, error) {
	if !s.Loaded() {
		return nil, ErrNoBank
	}
	return g.Generate(ctx, s.Index, req)
}

// Exporter returns an exporter wired to the session's attachments.
func (s *Session) Exporter(format render.Format, opts render.Options) *render.Exporter {
	e := render.NewExporter(format, s.Attachments)
	e.Options = opts
	return e
}
