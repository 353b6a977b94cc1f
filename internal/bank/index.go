package bank

// Index groups questions by (level, type). Every one of the eight buckets
// exists, possibly empty. An Index is read-only after Build.
type Index struct {
	buckets map[Level]map[Type][]Question
	total   int
}

// BuildIndex groups questions in a single pass, keeping source order within
// each bucket. Questions with a level or type outside the closed sets are
// filed under LevelNB and TypeEssay respectively.
func BuildIndex(questions []Question) *Index {
	idx := &Index{buckets: make(map[Level]map[Type][]Question, len(AllLevels()))}
	for _, l := range AllLevels() {
		idx.buckets[l] = make(map[Type][]Question, len(AllTypes()))
		for _, t := range AllTypes() {
			idx.buckets[l][t] = []Question{}
		}
	}

	for _, q := range questions {
		l := ParseLevel(string(q.Level))
		t := q.Type
		if t != TypeMCQ {
			t = TypeEssay
		}
		idx.buckets[l][t] = append(idx.buckets[l][t], q)
	}
	idx.total = len(questions)
	return idx
}

// Pool returns the questions for one (level, type) bucket. Callers must not
// modify the returned slice.
func (idx *Index) Pool(l Level, t Type) []Question {
	return idx.buckets[l][t]
}

// ByType returns all questions of type t across every level, in level order.
// The result is a fresh slice.
func (idx *Index) ByType(t Type) []Question {
	var out []Question
	for _, l := range AllLevels() {
		out = append(out, idx.buckets[l][t]...)
	}
	return out
}

// Count returns the size of one bucket.
func (idx *Index) Count(l Level, t Type) int {
	return len(idx.buckets[l][t])
}

// Total returns the number of indexed questions.
func (idx *Index) Total() int {
	return idx.total
}
