package bank

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultSeparator is the field separator of structured bank lines.
const DefaultSeparator = "|"

// IDMarker is the prefix that identifies a structured line by its id.
const IDMarker = "Q"

// minStructuredFields is the number of fields a structured line needs:
// id, level, type, subject, question.
const minStructuredFields = 5

var (
	annotationPattern = regexp.MustCompile(`(?i)\((?:\x{0111}\x{00e1}p \x{00e1}n|answer)`)
	trailingAnswer    = regexp.MustCompile(`[|;,]\s*([A-Da-d])\s*$`)
	mcqMarkers        = []string{"A.", "B.", "C.", "D."}
)

// LineContext carries parser state that strategies may consult.
type LineContext struct {
	// Recovered is the number of questions accepted before this line.
	Recovered int

	// Tail holds the ordered strategies used to interpret the MCQ tail of
	// structured lines.
	Tail []TailStrategy
}

// synthesizeID returns the id given to entries that carry none.
func (lc LineContext) synthesizeID() string {
	return fmt.Sprintf("MANUAL%03d", lc.Recovered+1)
}

// LineStrategy turns one raw line into a question, or declines it.
// Implementations must be stateless.
type LineStrategy interface {
	// Name returns a short identifier used in parse reports,
	// e.g. "manual", "structured".
	Name() string

	// Parse returns the question and true if the strategy accepts the line.
	Parse(line string, lc LineContext) (Question, bool)
}

// TailResult is the option/answer/hint content recovered from an MCQ tail.
type TailResult struct {
	Options [NumOptions]string
	Answer  string
	Hint    string
}

// TailStrategy interprets the fields after the question body of an MCQ line.
type TailStrategy interface {
	Name() string

	// Interpret returns the recovered content and true if the strategy
	// applies to this tail. line is the full source line.
	Interpret(tail []string, line string) (TailResult, bool)
}

// ManualStrategy recovers free-form lines such as
// "3. (TH) Name the capital of France (answer: Paris)". Lines starting with
// IDMarker or containing the separator are left to StructuredStrategy.
type ManualStrategy struct{}

func (ManualStrategy) Name() string { return "manual" }

func (ManualStrategy) Parse(line string, lc LineContext) (Question, bool) {
	if strings.HasPrefix(line, IDMarker) || strings.Contains(line, DefaultSeparator) {
		return Question{}, false
	}
	open := strings.Index(line, "(")
	if open < 0 {
		return Question{}, false
	}
	rel := strings.Index(line[open+1:], ")")
	if rel < 0 {
		return Question{}, false
	}
	closing := open + 1 + rel

	body := line[closing+1:]
	if loc := annotationPattern.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	}
	body = strings.TrimRight(strings.TrimSpace(body), " -–")
	if body == "" {
		return Question{}, false
	}

	typ := TypeEssay
	for _, m := range mcqMarkers {
		if strings.Contains(body, m) {
			typ = TypeMCQ
			break
		}
	}

	return Question{
		ID:       lc.synthesizeID(),
		Level:    ParseLevel(line[open+1 : closing]),
		Type:     typ,
		Subject:  UnknownSubject,
		Question: body,
	}, true
}

// StructuredStrategy parses separator-delimited lines of the form
// id|level|type|subject|question[|tail...].
type StructuredStrategy struct {
	// Separator defaults to DefaultSeparator when empty.
	Separator string
}

func (StructuredStrategy) Name() string { return "structured" }

func (s StructuredStrategy) Parse(line string, lc LineContext) (Question, bool) {
	sep := s.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	parts := strings.Split(line, sep)
	if len(parts) < minStructuredFields {
		return Question{}, false
	}

	q := Question{
		ID:       strings.TrimSpace(parts[0]),
		Level:    ParseLevel(parts[1]),
		Type:     ParseType(parts[2]),
		Subject:  strings.TrimSpace(parts[3]),
		Question: strings.TrimSpace(parts[4]),
	}
	if q.ID == "" {
		q.ID = lc.synthesizeID()
	}

	tail := parts[minStructuredFields:]
	if q.Type == TypeEssay {
		q.Hint = joinFields(tail)
		return q, true
	}

	for _, ts := range lc.Tail {
		if res, ok := ts.Interpret(tail, line); ok {
			q.Options = res.Options
			q.Answer = res.Answer
			q.Hint = res.Hint
			break
		}
	}
	return q, true
}

// ExplicitFieldsStrategy reads four option fields, an optional answer field
// and a trailing hint: opt1|opt2|opt3|opt4[|answer[|hint...]].
type ExplicitFieldsStrategy struct{}

func (ExplicitFieldsStrategy) Name() string { return "explicit-fields" }

func (ExplicitFieldsStrategy) Interpret(tail []string, _ string) (TailResult, bool) {
	if len(tail) < NumOptions {
		return TailResult{}, false
	}
	present := false
	for _, t := range tail[:NumOptions] {
		if strings.TrimSpace(t) != "" {
			present = true
			break
		}
	}
	if !present {
		return TailResult{}, false
	}

	var res TailResult
	for i := range NumOptions {
		res.Options[i] = CleanOption(tail[i])
	}
	if len(tail) > NumOptions {
		res.Answer = strings.TrimSpace(tail[NumOptions])
	}
	if len(tail) > NumOptions+1 {
		res.Hint = joinFields(tail[NumOptions+1:])
	}
	return res, true
}

// CombinedFieldStrategy handles tails where the options share one or more
// fields separated by ";", "|" or ",". A trailing answer letter is split off;
// an answer letter found anywhere else stays part of the options. It accepts
// every tail.
type CombinedFieldStrategy struct{}

func (CombinedFieldStrategy) Name() string { return "combined-field" }

func (CombinedFieldStrategy) Interpret(tail []string, line string) (TailResult, bool) {
	var res TailResult
	if len(tail) == 0 {
		return res, true
	}

	// Only a trailing answer letter is removed from the option source.
	// Letters found by the later scans set the answer and stay as options.
	source := tail
	if last := tail[len(tail)-1]; isAnswerLetter(last) {
		res.Answer = strings.ToUpper(strings.TrimSpace(last))
		source = tail[:len(tail)-1]
	}
	candidates := splitCombinedOptions(strings.Join(source, " | "))

	if res.Answer == "" {
		for _, t := range tail {
			if isAnswerLetter(t) {
				res.Answer = strings.ToUpper(strings.TrimSpace(t))
				break
			}
		}
		if m := trailingAnswer.FindStringSubmatch(line); m != nil {
			res.Answer = strings.ToUpper(m[1])
		}
	}

	for i := 0; i < NumOptions && i < len(candidates); i++ {
		res.Options[i] = candidates[i]
	}
	if len(candidates) > NumOptions {
		res.Hint = strings.Join(candidates[NumOptions:], "; ")
	}
	return res, true
}
