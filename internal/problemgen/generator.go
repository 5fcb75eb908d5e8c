package problemgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

// ErrFocusUnreachable is returned when no problem favouring the focus
// strategy was found within the attempt budget.
var ErrFocusUnreachable = errors.New("no problem found for focus strategy")

// Generator produces practice problems.
type Generator interface {
	// Generate returns the next problem.
	Generate(ctx context.Context) (Problem, error)
}

// RandomGenerator draws problems uniformly from operand ranges, or from
// strategy-shaped patterns when a focus strategy is set.
// It is safe for concurrent use.
type RandomGenerator struct {
	a, b     Range
	cfg      Config
	focus    method.Strategy
	selector *method.Selector

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a RandomGenerator. The selector is consulted only in focus mode.
func New(cfg Config, selector *method.Selector) (*RandomGenerator, error) {
	a, b, err := cfg.ranges()
	if err != nil {
		return nil, err
	}
	g := &RandomGenerator{a: a, b: b, cfg: cfg, selector: selector}
	if cfg.Focus != "" {
		s, err := method.ParseStrategy(cfg.Focus)
		if err != nil {
			return nil, fmt.Errorf("focus: %w", err)
		}
		g.focus = s
		if g.selector == nil {
			g.selector = method.NewSelector(method.DefaultConfig())
		}
	}
	if g.cfg.MaxFocusAttempts <= 0 {
		g.cfg.MaxFocusAttempts = DefaultConfig().MaxFocusAttempts
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return g, nil
}

// Generate returns the next problem.
func (g *RandomGenerator) Generate(ctx context.Context) (Problem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.focus == 0 {
		return g.uniform(), nil
	}

	for i := 0; i < g.cfg.MaxFocusAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return Problem{}, err
		}
		p := g.shaped(g.focus)
		cands, err := g.selector.Candidates(p.A, p.B)
		if err != nil {
			return Problem{}, err
		}
		if len(cands) > 0 && cands[0].Strategy == g.focus {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("%w: %s after %d attempts", ErrFocusUnreachable, g.focus, g.cfg.MaxFocusAttempts)
}

func (g *RandomGenerator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func (g *RandomGenerator) signed(n int64) int64 {
	if g.cfg.AllowNegative && g.rng.IntN(4) == 0 {
		return -n
	}
	return n
}

func (g *RandomGenerator) uniform() Problem {
	return Problem{
		A: g.signed(g.between(g.a.Min, g.a.Max)),
		B: g.signed(g.between(g.b.Min, g.b.Max)),
	}
}

// shaped draws a pair with the numeric pattern s looks for.
func (g *RandomGenerator) shaped(s method.Strategy) Problem {
	switch s {
	case method.SquareEndingInFive:
		n := 10*g.between(1, 9) + 5
		return Problem{n, n}
	case method.SameTensUnitsSumTen:
		t, u := 10*g.between(1, 9), g.between(1, 9)
		return Problem{t + u, t + 10 - u}
	case method.MultiplyBy111:
		return g.swap(Problem{111, g.between(2, 99)})
	case method.NearHundred:
		return Problem{100 + g.between(-9, 9), 100 + g.between(-9, 9)}
	case method.Squaring:
		n := g.between(11, 99)
		for n%5 == 0 {
			n = g.between(11, 99)
		}
		return Problem{n, n}
	case method.DifferenceOfSquares:
		m, d := 10*g.between(2, 9), g.between(1, 9)
		return Problem{m - d, m + d}
	case method.NearEqualSquares:
		n := 10 * g.between(2, 9)
		k := []int64{-2, -1, 1, 2}[g.rng.IntN(4)]
		return g.swap(Problem{n, n + k})
	case method.NearPowerOfTen:
		dev := g.between(1, 9)
		if g.rng.IntN(2) == 0 {
			dev = -dev
		}
		return g.swap(Problem{100 + dev, g.between(11, 89)})
	case method.Factorization:
		f := []int64{2, 4, 5, 6, 8}[g.rng.IntN(5)]
		y := 10*g.between(1, 9) + 5
		if f == 5 {
			y = 10*g.between(1, 9) + 2*g.between(1, 4)
		}
		return g.swap(Problem{f * g.between(2, 9), y})
	}
	return g.uniform()
}

func (g *RandomGenerator) swap(p Problem) Problem {
	if g.rng.IntN(2) == 0 {
		return Problem{p.B, p.A}
	}
	return p
}

// Sequence replays a fixed list of problems in order.
type Sequence struct {
	mu       sync.Mutex
	problems []Problem
	next     int
}

// ErrExhausted is returned by Sequence once every problem has been served.
var ErrExhausted = errors.New("problem sequence exhausted")

// NewSequence returns a Generator that serves problems in order.
func NewSequence(problems ...Problem) *Sequence {
	return &Sequence{problems: problems}
}

// Generate returns the next problem in the sequence.
func (s *Sequence) Generate(ctx context.Context) (Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.problems) {
		return Problem{}, ErrExhausted
	}
	p := s.problems[s.next]
	s.next++
	return p, nil
}
