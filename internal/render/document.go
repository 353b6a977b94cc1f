package render

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/generator"
)

// DocumentOption is one non-empty option slot.
type DocumentOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// DocumentItem is the structured form of one question handed to document
// renderers.
type DocumentItem struct {
	Number      int              `json:"number"`
	ID          string           `json:"id"`
	Level       bank.Level       `json:"level"`
	Type        bank.Type        `json:"type"`
	Subject     string           `json:"subject,omitempty"`
	Question    string           `json:"question"`
	Options     []DocumentOption `json:"options,omitempty"`
	Answer      string           `json:"answer,omitempty"`
	Hint        string           `json:"hint,omitempty"`
	Attachments []string         `json:"attachments,omitempty"`
}

// Document is one exam version in display order.
type Document struct {
	Label       string         `json:"label"`
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Items       []DocumentItem `json:"items"`
}

// BuildDocument converts a version into document data. attachments maps
// question ids to export-relative paths and may be nil.
func BuildDocument(v generator.Version, label string, attachments map[string][]string, at time.Time, opts Options) Document {
	doc := Document{Label: label, Version: v.Number, GeneratedAt: at}
	for i, q := range DisplayOrder(v.Questions) {
		item := DocumentItem{
			Number:      i + 1,
			ID:          q.ID,
			Level:       q.Level,
			Type:        q.Type,
			Subject:     q.Subject,
			Question:    q.Question,
			Attachments: attachments[q.ID],
		}
		if q.Type == bank.TypeMCQ && q.HasOptions() {
			for j, opt := range q.Options {
				if strings.TrimSpace(opt) != "" {
					item.Options = append(item.Options, DocumentOption{Label: bank.OptionLabel(j), Text: opt})
				}
			}
			if opts.ShowAnswers {
				item.Answer = q.Answer
			}
		}
		if opts.ShowHints {
			item.Hint = q.Hint
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

// DocumentRenderer writes documents in some output format. Page-layout
// renderers (word processors, PDF) implement it outside this module.
type DocumentRenderer interface {
	// Extension returns the file extension including the dot, e.g. ".json".
	Extension() string

	// Render writes docs to w. A single document is written on its own;
	// several documents form one combined output.
	Render(w io.Writer, docs ...Document) error
}

// JSONRenderer writes documents as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Extension() string { return ".json" }

func (JSONRenderer) Render(w io.Writer, docs ...Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(docs) == 1 {
		return enc.Encode(docs[0])
	}
	return enc.Encode(struct {
		Count    int        `json:"count"`
		Versions []Document `json:"versions"`
	}{Count: len(docs), Versions: docs})
}
