package method

import (
	"cmp"
	"errors"
	"slices"

	"go.uber.org/zap"
)

// Selector ranks catalog strategies for a problem and certifies the winner.
// It is safe for concurrent use.
type Selector struct {
	cfg    Config
	logger *zap.Logger

	// derive produces the steps that certify validates. Always Derive
	// outside tests.
	derive func(Strategy, int64, int64, Config) (*Solution, error)
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for invariant failures and dropped alternatives.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector creates a Selector. Zero-valued bounds in cfg fall back to defaults.
func NewSelector(cfg Config, opts ...Option) *Selector {
	s := &Selector{cfg: cfg.withDefaults(), logger: zap.NewNop(), derive: Derive}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Selector) Config() Config { return s.cfg }

var defaultSelector = NewSelector(DefaultConfig())

// SelectOptimalMethod ranks a × b with the default configuration.
func SelectOptimalMethod(a, b int64) (*Ranking, error) {
	return defaultSelector.Select(a, b)
}

// CheckOperands returns an *OperandError when |a| or |b| exceeds MaxOperand.
func CheckOperands(a, b int64) error {
	for _, v := range []int64{a, b} {
		if abs64(v) > MaxOperand {
			return &OperandError{Value: v}
		}
	}
	return nil
}

// Candidates scores every applicable strategy and returns them best first:
// lowest cost, then highest quality, then catalog priority.
func (s *Selector) Candidates(a, b int64) ([]Candidate, error) {
	if err := CheckOperands(a, b); err != nil {
		return nil, err
	}
	var out []Candidate
	for _, st := range Catalog() {
		if !Applicable(st, a, b, s.cfg) {
			continue
		}
		out = append(out, Candidate{
			Strategy: st,
			Cost:     Cost(st, a, b, s.cfg),
			Quality:  Quality(st, a, b, s.cfg),
		})
	}
	slices.SortStableFunc(out, compareCandidates)
	return out, nil
}

func compareCandidates(x, y Candidate) int {
	if c := cmp.Compare(x.Cost, y.Cost); c != 0 {
		return c
	}
	if c := cmp.Compare(y.Quality, x.Quality); c != 0 {
		return c
	}
	return cmp.Compare(x.Strategy.Priority(), y.Strategy.Priority())
}

// Select picks the optimal strategy for a × b, derives and validates it,
// and attaches up to MaxAlternatives validated runner-ups.
func (s *Selector) Select(a, b int64) (*Ranking, error) {
	cands, err := s.Candidates(a, b)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		err := &InvariantError{A: a, B: b, Err: ErrNoStrategy}
		s.logger.Error("no strategy applies", zap.Int64("a", a), zap.Int64("b", b), zap.Error(err))
		return nil, err
	}

	best := cands[0]
	sol, err := s.certify(best.Strategy, a, b)
	if err != nil {
		s.logger.Error("optimal derivation rejected",
			zap.Int64("a", a),
			zap.Int64("b", b),
			zap.Stringer("strategy", best.Strategy),
			zap.Error(err),
		)
		return nil, err
	}

	var alts []Alternative
	for _, c := range cands[1:] {
		if len(alts) >= s.cfg.MaxAlternatives {
			break
		}
		alt, err := s.certify(c.Strategy, a, b)
		if err != nil {
			s.logger.Debug("alternative dropped",
				zap.Int64("a", a),
				zap.Int64("b", b),
				zap.Stringer("strategy", c.Strategy),
				zap.Error(err),
			)
			continue
		}
		alts = append(alts, Alternative{
			Strategy:      c.Strategy,
			CostScore:     c.Cost,
			QualityScore:  c.Quality,
			Steps:         alt.Steps,
			WhyNotOptimal: whyNotOptimal(c, alt.Steps, best, sol.Steps),
		})
	}
	sol.Alternatives = alts

	r := &Ranking{
		A: a,
		B: b,
		Optimal: Choice{
			Strategy:     best.Strategy,
			Solution:     sol,
			CostScore:    best.Cost,
			QualityScore: best.Quality,
		},
		Alternatives: alts,
	}
	r.ComparisonSummary = comparisonSummary(r)

	s.logger.Debug("ranked",
		zap.Int64("a", a),
		zap.Int64("b", b),
		zap.Stringer("optimal", best.Strategy),
		zap.Float64("cost", best.Cost),
		zap.Int("alternatives", len(alts)),
	)
	return r, nil
}

// MustSelect is like Select but panics on error. It is meant for literal
// examples known to be well formed.
func (s *Selector) MustSelect(a, b int64) *Ranking {
	r, err := s.Select(a, b)
	if err != nil {
		panic(err)
	}
	return r
}

// certify derives st for a × b and validates the result.
func (s *Selector) certify(st Strategy, a, b int64) (*Solution, error) {
	sol, err := s.derive(st, a, b, s.cfg)
	if err != nil {
		return nil, err
	}
	vr := Validate(a, b, sol.Steps)
	if !vr.Valid {
		return nil, &InvariantError{Strategy: st, A: a, B: b, Err: ErrInvalidDerivation, Details: vr.Errors}
	}
	if len(vr.Warnings) > 0 {
		s.logger.Debug("derivation warnings",
			zap.Stringer("strategy", st),
			zap.Strings("warnings", vr.Warnings),
		)
	}
	sol.Validated = true
	sol.ValidationErrors = []string{}
	return sol, nil
}

// IsInvariant reports whether err signals an engine defect rather than bad input.
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInvariant)
}
