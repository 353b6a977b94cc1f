// Package render formats exam versions as plain text and exports them to
// files.
package render

import (
	"strconv"
	"strings"

	"github.com/abhisek/examforge/internal/bank"
)

// Options controls which optional lines are rendered.
type Options struct {
	ShowAnswers bool
	ShowHints   bool
}

// Question renders one question block numbered n:
//
//	Question 3: [TH] Cell has?
//	  A. Nucleus
//	  B. Membrane
//	  Answer: B
//	  Hint: ...
//
// Options keep the letter of their slot; empty slots are not printed. The
// answer line belongs to the option list and is omitted when there is none.
func Question(q bank.Question, n int, opts Options) string {
	lines := []string{"Question " + strconv.Itoa(n) + ": [" + string(q.Level) + "] " + q.Question}
	if q.Type == bank.TypeMCQ && q.HasOptions() {
		for i, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				continue
			}
			lines = append(lines, "  "+bank.OptionLabel(i)+". "+opt)
		}
		if opts.ShowAnswers && q.Answer != "" {
			lines = append(lines, "  Answer: "+q.Answer)
		}
	}
	if opts.ShowHints && q.Hint != "" {
		lines = append(lines, "  Hint: "+q.Hint)
	}
	return strings.Join(lines, "\n")
}

// Questions renders qs in the given order, numbered from 1, with a blank
// line between blocks.
func Questions(qs []bank.Question, opts Options) string {
	blocks := make([]string, len(qs))
	for i, q := range qs {
		blocks[i] = Question(q, i+1, opts)
	}
	return strings.Join(blocks, "\n\n")
}

// DisplayOrder returns the questions with every MCQ before every essay,
// keeping the stored order within each type. qs is not modified.
func DisplayOrder(qs []bank.Question) []bank.Question {
	out := make([]bank.Question, 0, len(qs))
	for _, q := range qs {
		if q.Type == bank.TypeMCQ {
			out = append(out, q)
		}
	}
	for _, q := range qs {
		if q.Type != bank.TypeMCQ {
			out = append(out, q)
		}
	}
	return out
}

// Label returns the version label used in per-file exports: A-Z for the
// first 26 versions, then the decimal number.
func Label(n int) string {
	if n >= 1 && n <= 26 {
		return string(rune('A' + n - 1))
	}
	return strconv.Itoa(n)
}
