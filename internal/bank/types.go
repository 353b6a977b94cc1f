package bank

import "strings"

// Level is the cognitive difficulty level of a question.
type Level string

const (
	LevelNB  Level = "NB"  // recognition
	LevelTH  Level = "TH"  // comprehension
	LevelVD  Level = "VD"  // application
	LevelVDH Level = "VDH" // advanced application
)

// AllLevels returns all levels in allocation order.
func AllLevels() []Level {
	return []Level{LevelNB, LevelTH, LevelVD, LevelVDH}
}

// ParseLevel normalizes a raw level token. Unknown or empty tokens map to LevelNB.
func ParseLevel(raw string) Level {
	switch l := Level(strings.ToUpper(strings.TrimSpace(raw))); l {
	case LevelNB, LevelTH, LevelVD, LevelVDH:
		return l
	default:
		return LevelNB
	}
}

// Type is the answer format of a question.
type Type string

const (
	TypeMCQ   Type = "MCQ"
	TypeEssay Type = "ESSAY"
)

// AllTypes returns both question types, MCQ first.
func AllTypes() []Type {
	return []Type{TypeMCQ, TypeEssay}
}

// ParseType normalizes a raw type token. Tokens containing "ESSAY" or the
// short form "TL" (case-insensitive) are essays; everything else is MCQ.
func ParseType(raw string) Type {
	up := strings.ToUpper(raw)
	if strings.Contains(up, "ESSAY") || strings.Contains(up, "TL") {
		return TypeEssay
	}
	return TypeMCQ
}

// NumOptions is the fixed number of option slots on every question.
const NumOptions = 4

// UnknownSubject is the subject assigned to free-form lines.
const UnknownSubject = "Unspecified"

// Question is one parsed bank entry. Values are never mutated after parsing.
type Question struct {
	ID       string
	Level    Level
	Type     Type
	Subject  string
	Question string

	// Options always has exactly NumOptions slots. Unused slots are empty.
	// Only meaningful when Type is TypeMCQ.
	Options [NumOptions]string

	// Answer is expected to be a letter A-D for MCQ but is not validated.
	// Empty means unknown.
	Answer string

	Hint string
}

// HasOptions reports whether any option slot is non-empty.
func (q Question) HasOptions() bool {
	for _, o := range q.Options {
		if strings.TrimSpace(o) != "" {
			return true
		}
	}
	return false
}

// OptionLabel returns the letter label (A-D) for option slot i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}
