package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/examforge/internal/attach"
	"github.com/abhisek/examforge/internal/generator"
)

const (
	headerTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout   = "20060102_150405"
	ruleWidth        = 50
)

// Format selects the export file format.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q: must be txt or json", s)
	}
}

// WriteError indicates an export target could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result lists what an export produced.
type Result struct {
	// Written holds the paths of files written successfully.
	Written []string

	// Warnings holds non-fatal problems such as attachments that could
	// not be copied.
	Warnings []error
}

// Exporter writes generated versions to disk.
type Exporter struct {
	Format  Format
	Options Options

	// Attachments is consulted at export time; nil means none.
	Attachments *attach.Registry

	// Document renders non-text formats. Defaults to JSONRenderer.
	Document DocumentRenderer

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates an Exporter that shows answers and hints.
func NewExporter(format Format, reg *attach.Registry) *Exporter {
	return &Exporter{
		Format:      format,
		Options:     Options{ShowAnswers: true, ShowHints: true},
		Attachments: reg,
	}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) documentRenderer() DocumentRenderer {
	if e.Document != nil {
		return e.Document
	}
	return JSONRenderer{}
}

func (e *Exporter) extension() string {
	if e.Format == FormatText || e.Format == "" {
		return ".txt"
	}
	return e.documentRenderer().Extension()
}

// FileName returns the per-version file name for a bank called baseName.
func (e *Exporter) FileName(baseName string, n int, at time.Time) string {
	if baseName == "" {
		baseName = "exam"
	}
	return fmt.Sprintf("%s_version_%s_%s%s", baseName, Label(n), at.Format(fileTimeLayout), e.extension())
}

// WriteFiles writes one file per version into dir. A file that cannot be
// written does not stop the others; the returned error joins one
// *WriteError per failed file.
func (e *Exporter) WriteFiles(dir, baseName string, versions []generator.Version) (*Result, error) {
	res := &Result{}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, &WriteError{Path: dir, Err: err}
	}

	at := e.now()
	copier := attach.NewCopier(dir)
	var errs []error
	for _, v := range versions {
		attachments := e.copyAttachments(copier, v, res)
		path := filepath.Join(dir, e.FileName(baseName, v.Number, at))

		var buf bytes.Buffer
		if e.Format == FormatText || e.Format == "" {
			buf.WriteString(versionText(v, attachments, at, e.Options))
		} else {
			doc := BuildDocument(v, Label(v.Number), attachments, at, e.Options)
			if err := e.documentRenderer().Render(&buf, doc); err != nil {
				errs = append(errs, &WriteError{Path: path, Err: err})
				continue
			}
		}

		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, &WriteError{Path: path, Err: err})
			continue
		}
		res.Written = append(res.Written, path)
	}
	return res, errors.Join(errs...)
}

// WriteCombined writes every version into a single file at path.
func (e *Exporter) WriteCombined(path string, versions []generator.Version) (*Result, error) {
	res := &Result{}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}

	at := e.now()
	copier := attach.NewCopier(dir)
	var buf bytes.Buffer
	if e.Format == FormatText || e.Format == "" {
		fmt.Fprintf(&buf, "EXAM GENERATION RESULTS\nGenerated at: %s\nVersions: %d\n\n", at.Format(headerTimeLayout), len(versions))
		rule := strings.Repeat("=", ruleWidth)
		for _, v := range versions {
			attachments := e.copyAttachments(copier, v, res)
			fmt.Fprintf(&buf, "%s\nVERSION %d\n%s\n\n", rule, v.Number, rule)
			for i, q := range DisplayOrder(v.Questions) {
				buf.WriteString(Question(q, i+1, e.Options))
				buf.WriteString("\n")
				for _, p := range attachments[q.ID] {
					fmt.Fprintf(&buf, "Attachment: %s\n", p)
				}
				buf.WriteString("\n")
			}
			fmt.Fprintf(&buf, "\n%s\n\n", rule)
		}
	} else {
		docs := make([]Document, len(versions))
		for i, v := range versions {
			docs[i] = BuildDocument(v, Label(v.Number), e.copyAttachments(copier, v, res), at, e.Options)
		}
		if err := e.documentRenderer().Render(&buf, docs...); err != nil {
			return res, &WriteError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	res.Written = append(res.Written, path)
	return res, nil
}

// copyAttachments copies the files of v's questions and returns the
// id -> relative path mapping.
func (e *Exporter) copyAttachments(c *attach.Copier, v generator.Version, res *Result) map[string][]string {
	if e.Attachments == nil || e.Attachments.Len() == 0 {
		return nil
	}
	copied, errs := c.Copy(e.Attachments, v.IDs())
	res.Warnings = append(res.Warnings, errs...)
	return copied
}

// versionText renders the per-file text export of one version.
func versionText(v generator.Version, attachments map[string][]string, at time.Time, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EXAM VERSION %s — generated at %s\n\n", Label(v.Number), at.Format(headerTimeLayout))

	ordered := DisplayOrder(v.Questions)
	for i, q := range ordered {
		b.WriteString(Question(q, i+1, opts))
		b.WriteString("\n\n")
	}

	if len(attachments) > 0 {
		b.WriteString("\nATTACHMENTS:\n")
		for _, q := range ordered {
			for _, p := range attachments[q.ID] {
				fmt.Fprintf(&b, "%s: %s\n", q.ID, p)
			}
		}
	}
	return b.String()
}
