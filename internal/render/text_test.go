package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/examforge/internal/bank"
)

var all = Options{ShowAnswers: true, ShowHints: true}

func TestQuestion_MCQ(t *testing.T) {
	q := bank.Question{
		ID: "Q1", Level: bank.LevelTH, Type: bank.TypeMCQ,
		Question: "Cell has?",
		Options:  [4]string{"Nucleus", "Membrane", "", ""},
		Answer:   "B",
		Hint:     "think outside",
	}

	want := "Question 3: [TH] Cell has?\n" +
		"  A. Nucleus\n" +
		"  B. Membrane\n" +
		"  Answer: B\n" +
		"  Hint: think outside"
	assert.Equal(t, want, Question(q, 3, all))
}

func TestQuestion_SlotLettersKept(t *testing.T) {
	q := bank.Question{Level: bank.LevelNB, Type: bank.TypeMCQ, Question: "x", Options: [4]string{"a", "", "c", ""}}
	assert.Equal(t, "Question 1: [NB] x\n  A. a\n  C. c", Question(q, 1, all))
}

func TestQuestion_HiddenAnswersAndHints(t *testing.T) {
	q := bank.Question{Level: bank.LevelVD, Type: bank.TypeMCQ, Question: "x", Options: [4]string{"a", "b", "", ""}, Answer: "A", Hint: "h"}
	got := Question(q, 1, Options{})
	assert.Equal(t, "Question 1: [VD] x\n  A. a\n  B. b", got)
	assert.NotContains(t, got, "Answer")
	assert.NotContains(t, got, "Hint")
}

func TestQuestion_Essay(t *testing.T) {
	q := bank.Question{Level: bank.LevelVDH, Type: bank.TypeEssay, Question: "Explain", Hint: "guide"}
	assert.Equal(t, "Question 2: [VDH] Explain\n  Hint: guide", Question(q, 2, all))
}

func TestQuestion_AnswerNeedsOptions(t *testing.T) {
	mcq := bank.Question{Level: bank.LevelNB, Type: bank.TypeMCQ, Question: "Q?", Answer: "B"}
	assert.Equal(t, "Question 1: [NB] Q?", Question(mcq, 1, all))

	essay := bank.Question{Level: bank.LevelTH, Type: bank.TypeEssay, Question: "Why?", Answer: "because"}
	assert.Equal(t, "Question 1: [TH] Why?", Question(essay, 1, all))
}

func TestQuestions_BlankLineBetweenBlocks(t *testing.T) {
	qs := []bank.Question{
		{Level: bank.LevelNB, Type: bank.TypeEssay, Question: "one"},
		{Level: bank.LevelTH, Type: bank.TypeEssay, Question: "two"},
	}
	assert.Equal(t, "Question 1: [NB] one\n\nQuestion 2: [TH] two", Questions(qs, all))
}

func TestDisplayOrder(t *testing.T) {
	qs := []bank.Question{
		{ID: "E1", Type: bank.TypeEssay},
		{ID: "M1", Type: bank.TypeMCQ},
		{ID: "E2", Type: bank.TypeEssay},
		{ID: "M2", Type: bank.TypeMCQ},
	}
	got := DisplayOrder(qs)

	ids := make([]string, len(got))
	for i, q := range got {
		ids[i] = q.ID
	}
	assert.Equal(t, []string{"M1", "M2", "E1", "E2"}, ids)
	assert.Equal(t, "E1", qs[0].ID, "input untouched")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", Label(1))
	assert.Equal(t, "C", Label(3))
	assert.Equal(t, "Z", Label(26))
	assert.Equal(t, "27", Label(27))
}
