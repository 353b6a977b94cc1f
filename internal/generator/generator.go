package generator

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/examforge/internal/bank"
)

// Generator produces exam versions from an indexed bank.
type Generator interface {
	// Generate builds req.Versions independent versions. Under-filled
	// versions are not an error; only an invalid request or a cancelled
	// context is.
	Generate(ctx context.Context, idx *bank.Index, req Request) ([]Version, error)
}

// pcgStream is the fixed PCG increment paired with every seed.
const pcgStream = 0x9e3779b97f4a7c15

// Stratified allocates questions level by level under type quotas, then
// backfills any remaining type quota from the whole bank.
type Stratified struct {
	cfg  Config
	seed uint64
}

// New creates a Stratified generator.
func New(cfg Config) *Stratified {
	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	return &Stratified{cfg: cfg, seed: seed}
}

// Seed returns the seed of the master stream. Every Generate call restarts
// the master stream from it, so the same seed and request always reproduce
// the same versions.
func (g *Stratified) Seed() uint64 {
	return g.seed
}

// Generate implements Generator. Each version gets its own random stream,
// derived from the master stream in version order before any work starts,
// so the output for a given seed does not depend on Workers or on earlier
// calls.
func (g *Stratified) Generate(ctx context.Context, idx *bank.Index, req Request) ([]Version, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	streams := g.streams(req.Versions)
	versions := make([]Version, req.Versions)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i := range versions {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			versions[i] = Version{
				Number:    i + 1,
				Questions: BuildVersion(idx, req, streams[i]),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return versions, nil
}

// streams derives n independent random streams from a fresh master stream.
func (g *Stratified) streams(n int) []*rand.Rand {
	master := rand.New(rand.NewPCG(g.seed, pcgStream))
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = rand.New(rand.NewPCG(master.Uint64(), master.Uint64()))
	}
	return out
}

// BuildVersion selects the questions of a single version using r for every
// shuffle. It never selects the same question twice.
//
// Pass 1 walks the levels in order; for each level with a non-zero target it
// takes MCQ first, then essays for the rest of the target, both capped by
// the remaining type quota and the bucket size. Pass 2 fills the remaining
// type quota from all levels. The result is shuffled as a whole.
func BuildVersion(idx *bank.Index, req Request, r *rand.Rand) []bank.Question {
	remainingMCQ, remainingEssay := req.MCQ, req.Essay
	var selected []bank.Question
	taken := make(map[string]bool)

	take := func(qs []bank.Question) {
		for _, q := range qs {
			taken[q.ID] = true
		}
		selected = append(selected, qs...)
	}

	for _, l := range bank.AllLevels() {
		need := req.Levels[l]
		if need <= 0 {
			continue
		}
		mcqPool := shuffled(idx.Pool(l, bank.TypeMCQ), r)
		essayPool := shuffled(idx.Pool(l, bank.TypeEssay), r)

		takeMCQ := min(need, remainingMCQ, len(mcqPool))
		takeEssay := min(need-takeMCQ, remainingEssay, len(essayPool))

		take(mcqPool[:takeMCQ])
		take(essayPool[:takeEssay])

		remainingMCQ -= takeMCQ
		remainingEssay -= takeEssay
	}

	allMCQ := shuffled(unselected(idx.ByType(bank.TypeMCQ), taken), r)
	allEssay := shuffled(unselected(idx.ByType(bank.TypeEssay), taken), r)
	take(allMCQ[:min(remainingMCQ, len(allMCQ))])
	take(allEssay[:min(remainingEssay, len(allEssay))])

	r.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// shuffled returns a shuffled copy of qs.
func shuffled(qs []bank.Question, r *rand.Rand) []bank.Question {
	out := make([]bank.Question, len(qs))
	copy(out, qs)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// unselected filters out questions already taken for the current version.
func unselected(qs []bank.Question, taken map[string]bool) []bank.Question {
	out := qs[:0:0]
	for _, q := range qs {
		if !taken[q.ID] {
			out = append(out, q)
		}
	}
	return out
}
