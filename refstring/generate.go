package refstring

import (
	"math/rand"
)

// A Generator creates random problems. The same seed always produces the
// same sequence of problems.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate draws a random problem: page count in [1, 100], frame count in
// [1, 20], window size in [1, 100], length in [page count + 1, 100000] and
// references uniform over [0, page count).
func (g *Generator) Generate() *Problem {
	page := g.rng.Intn(MaxPageCount) + 1
	frame := g.rng.Intn(MaxFrameCount) + 1
	window := g.rng.Intn(MaxWindowSize) + 1
	length := g.rng.Intn(MaxLength-page) + 1 + page

	p, err := g.GenerateFor(Params{
		PageCount:  page,
		FrameCount: frame,
		WindowSize: window,
		Length:     length,
	})
	if err != nil {
		panic(err)
	}

	return p
}

// GenerateFor draws a reference string for the given parameters.
func (g *Generator) GenerateFor(params Params) (*Problem, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	if params.PageCount == 0 && params.Length > 0 {
		return nil, malformedf(
			"cannot draw %d references from 0 pages", params.Length)
	}

	refs, err := allocate(params.Length)
	if err != nil {
		return nil, err
	}

	for i := range refs {
		refs[i] = g.rng.Intn(params.PageCount)
	}

	return &Problem{Params: params, Refs: refs}, nil
}
