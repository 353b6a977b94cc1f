package generator

import (
	"github.com/abhisek/examforge/internal/bank"
)

// Request holds the per-run quotas. Quotas are best-effort ceilings: a
// version may contain fewer questions when the bank is too small.
type Request struct {
	// Versions is the number of exam versions to produce. Must be >= 1.
	Versions int

	// Levels is the desired count of questions per level, independent of
	// type. Missing levels count as zero. Only the first allocation pass
	// looks at these.
	Levels map[bank.Level]int

	// MCQ and Essay are the per-version upper bounds for each type.
	MCQ   int
	Essay int
}

// Total returns the number of questions requested per version.
func (r Request) Total() int {
	return r.MCQ + r.Essay
}

// Version is one generated exam. Questions are in stored order, which is a
// random permutation; renderers apply their own display order.
type Version struct {
	// Number is the 1-based position of the version in its batch.
	Number    int
	Questions []bank.Question
}

// Counts summarizes a version by type and by level.
type Counts struct {
	MCQ     int
	Essay   int
	ByLevel map[bank.Level]int
}

// Total returns MCQ + Essay.
func (c Counts) Total() int {
	return c.MCQ + c.Essay
}

// Counts tallies the questions in v.
func (v Version) Counts() Counts {
	c := Counts{ByLevel: make(map[bank.Level]int, len(bank.AllLevels()))}
	for _, q := range v.Questions {
		if q.Type == bank.TypeMCQ {
			c.MCQ++
		} else {
			c.Essay++
		}
		c.ByLevel[q.Level]++
	}
	return c
}

// IDs returns the question ids of v in stored order.
func (v Version) IDs() []string {
	ids := make([]string, len(v.Questions))
	for i, q := range v.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Shortfall returns how many MCQ and essay questions the version is missing
// relative to the request. Both are zero when the request was satisfied.
func (r Request) Shortfall(v Version) (mcq, essay int) {
	c := v.Counts()
	return max(r.MCQ-c.MCQ, 0), max(r.Essay-c.Essay, 0)
}
