package bank

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParserConfig controls which strategies the Parser tries, in order.
type ParserConfig struct {
	// Lines is the ordered list of line strategies. The first strategy that
	// accepts a line wins; a line no strategy accepts is skipped.
	Lines []LineStrategy

	// Tail is the ordered list of strategies for MCQ tails of structured lines.
	Tail []TailStrategy
}

// DefaultParserConfig returns the standard strategy chain: free-form lines
// first, then structured lines whose MCQ tails are read as four explicit
// fields or, failing that, as a combined field.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Lines: []LineStrategy{
			ManualStrategy{},
			StructuredStrategy{Separator: DefaultSeparator},
		},
		Tail: []TailStrategy{
			ExplicitFieldsStrategy{},
			CombinedFieldStrategy{},
		},
	}
}

// RenamedID records a duplicate id that was made unique.
type RenamedID struct {
	Line int
	From string
	To   string
}

// ParseReport summarizes what the parser recovered from a source.
type ParseReport struct {
	Lines     int            // non-blank lines seen
	Recovered int            // questions produced
	Skipped   int            // lines no strategy accepted
	Hits      map[string]int // accepted lines per line strategy name
	Renamed   []RenamedID
}

// Parser converts line-oriented bank text into questions.
type Parser struct {
	cfg ParserConfig
}

// NewParser creates a Parser with the given config.
func NewParser(cfg ParserConfig) *Parser {
	return &Parser{cfg: cfg}
}

// Parse reads all of r and parses it. Malformed lines are skipped and only
// show up in the report; the error is non-nil only if reading fails.
func (p *Parser) Parse(r io.Reader) ([]Question, *ParseReport, error) {
	dec := transform.NewReader(r, transform.Chain(unicode.UTF8BOM.NewDecoder(), norm.NFC))
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, nil, err
	}
	qs, report := p.ParseString(string(raw))
	return qs, report, nil
}

// ParseString parses already-decoded bank text.
func (p *Parser) ParseString(content string) ([]Question, *ParseReport) {
	report := &ParseReport{Hits: make(map[string]int)}
	var questions []Question
	seen := make(map[string]bool)

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		report.Lines++

		lc := LineContext{Recovered: len(questions), Tail: p.cfg.Tail}
		q, name, ok := p.parseLine(line, lc)
		if !ok {
			report.Skipped++
			continue
		}

		if seen[q.ID] {
			unique := uniqueID(q.ID, seen)
			report.Renamed = append(report.Renamed, RenamedID{Line: i + 1, From: q.ID, To: unique})
			q.ID = unique
		}
		seen[q.ID] = true

		report.Hits[name]++
		questions = append(questions, q)
	}

	report.Recovered = len(questions)
	return questions, report
}

// parseLine runs the line strategies in order.
func (p *Parser) parseLine(line string, lc LineContext) (Question, string, bool) {
	for _, s := range p.cfg.Lines {
		if q, ok := s.Parse(line, lc); ok {
			return q, s.Name(), true
		}
	}
	return Question{}, "", false
}

// uniqueID returns id with the smallest "_k" suffix (k >= 2) not in seen.
func uniqueID(id string, seen map[string]bool) string {
	for k := 2; ; k++ {
		candidate := fmt.Sprintf("%s_%d", id, k)
		if !seen[candidate] {
			return candidate
		}
	}
}

// ParseFile parses the bank file at path with the default strategies.
// It returns *ReadError if the file cannot be read and ErrNoData if no
// question could be recovered.
func ParseFile(path string) ([]Question, *ParseReport, error) {
	return NewParser(DefaultParserConfig()).ParseFile(path)
}

// ParseFile parses the bank file at path.
func (p *Parser) ParseFile(path string) ([]Question, *ParseReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	qs, report, err := p.Parse(f)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Err: err}
	}
	if len(qs) == 0 {
		return nil, report, ErrNoData
	}
	return qs, report, nil
}

// IsNoData reports whether err is the empty-bank condition.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
