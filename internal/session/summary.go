package session

import (
	"github.com/abhisek/examforge/internal/bank"
	"github.com/abhisek/examforge/internal/generator"
)

// VersionSummary holds the figures printed for one generated version.
type VersionSummary struct {
	Number       int
	Counts       generator.Counts
	MissingMCQ   int
	MissingEssay int
}

// Short reports whether the bank could not satisfy the request.
func (v VersionSummary) Short() bool {
	return v.MissingMCQ > 0 || v.MissingEssay > 0
}

// Summary describes a generation run.
type Summary struct {
	BankPath  string
	Seed      uint64
	Requested generator.Request
	Versions  []VersionSummary

	// Available is the number of bank questions per type.
	Available map[bank.Type]int
}

// BuildSummary creates a Summary for versions generated from the session's
// bank with req.
func (s *Session) BuildSummary(req generator.Request, versions []generator.Version, seed uint64) *Summary {
	sum := &Summary{
		BankPath:  s.BankPath,
		Seed:      seed,
		Requested: req,
		Available: make(map[bank.Type]int, 2),
	}
	if s.Index != nil {
		for _, t := range bank.AllTypes() {
			sum.Available[t] = len(s.Index.ByType(t))
		}
	}
	for _, v := range versions {
		mcq, essay := req.Shortfall(v)
		sum.Versions = append(sum.Versions, VersionSummary{
			Number:       v.Number,
			Counts:       v.Counts(),
			MissingMCQ:   mcq,
			MissingEssay: essay,
		})
	}
	return sum
}

// AnyShort reports whether some version is under-filled.
func (s *Summary) AnyShort() bool {
	for _, v := range s.Versions {
		if v.Short() {
			return true
		}
	}
	return false
}
