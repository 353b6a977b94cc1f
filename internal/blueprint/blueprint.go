// Package blueprint loads generation blueprints: YAML files holding the
// quotas, seed and export settings of a generation run.
//
//	versions: 3
//	mcq: 20
//	essay: 2
//	levels: {NB: 8, TH: 8, VD: 4, VDH: 2}
//	seed: 42
//	export:
//	  mode: combined
//	  format: txt
//	  show_answers: false
package blueprint

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/generator"
	"github.com/abhisek/examforge/internal/render"
)

// Export modes.
const (
	ModeFiles    = "files"
	ModeCombined = "combined"
)

// Export holds the export section of a blueprint.
type Export struct {
	Mode        string `yaml:"mode"`
	Format      string `yaml:"format"`
	ShowAnswers *bool  `yaml:"show_answers,omitempty"`
	ShowHints   *bool  `yaml:"show_hints,omitempty"`
}

// Blueprint is a decoded and validated blueprint document.
type Blueprint struct {
	Versions int            `yaml:"versions"`
	MCQ      int            `yaml:"mcq"`
	Essay    int            `yaml:"essay"`
	Levels   map[string]int `yaml:"levels,omitempty"`
	Seed     uint64         `yaml:"seed,omitempty"`
	Export   Export         `yaml:"export"`
}

// InvalidError reports a blueprint that failed decoding or schema
// validation.
type InvalidError struct {
	Path string
	Err  error
}

func (e *InvalidError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid blueprint: %v", e.Err)
	}
	return fmt.Sprintf("invalid blueprint %s: %v", e.Path, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

// Default returns the blueprint used when no file is given.
func Default() *Blueprint {
	b := &Blueprint{Versions: 1}
	b.applyDefaults()
	return b
}

// Load reads and parses the blueprint at path.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		var inv *InvalidError
		if errors.As(err, &inv) {
			inv.Path = path
		}
		return nil, err
	}
	return b, nil
}

// Parse decodes and validates a blueprint document. Missing fields take
// their defaults: one version, files mode, txt format, answers and hints
// shown.
func Parse(data []byte) (*Blueprint, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidError{Err: err}
	}
	if err := validate(doc); err != nil {
		return nil, &InvalidError{Err: err}
	}

	var b Blueprint
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, &InvalidError{Err: err}
	}
	if b.Versions == 0 {
		b.Versions = 1
	}
	b.applyDefaults()
	return &b, nil
}

func (b *Blueprint) applyDefaults() {
	if b.Export.Mode == "" {
		b.Export.Mode = ModeFiles
	}
	if b.Export.Format == "" {
		b.Export.Format = string(render.FormatText)
	}
	if b.Export.ShowAnswers == nil {
		b.Export.ShowAnswers = ptr(true)
	}
	if b.Export.ShowHints == nil {
		b.Export.ShowHints = ptr(true)
	}
}

// Request converts the quotas into a generation request.
func (b *Blueprint) Request() generator.Request {
	req := generator.Request{Versions: b.Versions, MCQ: b.MCQ, Essay: b.Essay}
	if len(b.Levels) > 0 {
		req.Levels = make(map[bank.Level]int, len(b.Levels))
		for name, n := range b.Levels {
			req.Levels[bank.Level(name)] = n
		}
	}
	return req
}

// Combined reports whether all versions go into one file.
func (b *Blueprint) Combined() bool {
	return b.Export.Mode == ModeCombined
}

// Format returns the export format.
func (b *Blueprint) Format() render.Format {
	return render.Format(b.Export.Format)
}

// RenderOptions returns the answer and hint visibility.
func (b *Blueprint) RenderOptions() render.Options {
	return render.Options{
		ShowAnswers: b.Export.ShowAnswers == nil || *b.Export.ShowAnswers,
		ShowHints:   b.Export.ShowHints == nil || *b.Export.ShowHints,
	}
}

// Marshal encodes the blueprint back to YAML with defaults filled in.
func (b *Blueprint) Marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

func ptr[T any](v T) *T { return &v }
