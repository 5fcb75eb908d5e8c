package method

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSelectKnownValues(t *testing.T) {
	tests := []struct {
		name      string
		a, b      int64
		want      []Strategy
		answer    int64
		firstStep string
		maxSteps  int
	}{
		{"symmetric around 50", 47, 53, []Strategy{DifferenceOfSquares}, 2491, "(50 − 3) × (50 + 3)", 0},
		{"just under 100", 98, 47, []Strategy{NearPowerOfTen}, 4606, "(100 − 2) × 47", 0},
		{"square", 73, 73, []Strategy{Squaring}, 5329, "(70 + 3)²", 0},
		{"both sides of 100", 97, 103, []Strategy{NearHundred}, 9991, "", 0},
		{"round factor", 24, 35, []Strategy{Factorization}, 840, "4 × 6 × 35", 0},
		{"both under 100", 92, 88, []Strategy{NearHundred, DifferenceOfSquares}, 8096, "", 7},
		{"round square", 50, 50, []Strategy{Squaring, DifferenceOfSquares, NearPowerOfTen}, 2500, "", 0},
		{"ninety nine squared", 99, 99, []Strategy{NearHundred, Squaring, NearPowerOfTen}, 9801, "", 0},
		{"ends in five", 65, 65, []Strategy{SquareEndingInFive}, 4225, "6 × 7 × 100 + 25", 0},
		{"units sum to ten", 43, 47, []Strategy{SameTensUnitsSumTen}, 2021, "(40 + 3) × (40 + 7)", 0},
		{"by 111", 111, 34, []Strategy{MultiplyBy111}, 3774, "34 × (100 + 10 + 1)", 0},
		{"neighbours", 50, 51, []Strategy{NearEqualSquares}, 2550, "50 × (50 + 1)", 0},
		{"no shortcut", 37, 46, []Strategy{PlaceValue}, 1702, "37 × (40 + 6)", 0},
		{"negative", -47, 53, []Strategy{PlaceValue}, -2491, "", 0},
		{"zero", 0, 9, []Strategy{PlaceValue}, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := SelectOptimalMethod(tt.a, tt.b)
			require.NoError(t, err)

			assert.Contains(t, tt.want, r.Optimal.Strategy)
			sol := r.Optimal.Solution
			require.NotNil(t, sol)
			assert.True(t, sol.Validated)
			assert.Empty(t, sol.ValidationErrors)
			assert.Equal(t, tt.answer, sol.Answer())
			assert.Equal(t, tt.answer, sol.Steps[0].Result)
			if tt.firstStep != "" {
				assert.Contains(t, sol.Steps[0].Expression, tt.firstStep)
			}
			if tt.maxSteps > 0 {
				assert.LessOrEqual(t, countSteps(sol.Steps), tt.maxSteps)
			}

			vr := Validate(tt.a, tt.b, sol.Steps)
			assert.True(t, vr.Valid, vr.Errors)
			assert.Empty(t, vr.Warnings)
		})
	}
}

func TestSelectGridIsCorrect(t *testing.T) {
	s := NewSelector(DefaultConfig())
	check := func(a, b int64) {
		r, err := s.Select(a, b)
		require.NoError(t, err, "%d × %d", a, b)

		sol := r.Optimal.Solution
		require.True(t, sol.Validated, "%d × %d", a, b)
		require.Equal(t, a*b, sol.Answer(), "%d × %d via %s", a, b, sol.Strategy)
		require.Equal(t, a*b, sol.Steps[0].Result, "%d × %d via %s", a, b, sol.Strategy)
		require.LessOrEqual(t, len(r.Alternatives), s.Config().MaxAlternatives)

		for _, alt := range r.Alternatives {
			require.NotEqual(t, r.Optimal.Strategy, alt.Strategy)
			require.GreaterOrEqual(t, alt.CostScore, r.Optimal.CostScore)
			require.Equal(t, a*b, alt.Steps[len(alt.Steps)-1].Result, "%d × %d alt %s", a, b, alt.Strategy)
			vr := Validate(a, b, alt.Steps)
			require.True(t, vr.Valid, "%d × %d alt %s: %v", a, b, alt.Strategy, vr.Errors)
			require.NotEmpty(t, alt.WhyNotOptimal)
		}
		require.Contains(t, r.ComparisonSummary, r.Optimal.Strategy.DisplayName())
	}

	for a := int64(1); a <= 120; a++ {
		for b := int64(1); b <= 120; b++ {
			check(a, b)
		}
	}
	for a := int64(-15); a <= 15; a++ {
		for b := int64(-15); b <= 15; b++ {
			check(a, b)
		}
	}
	for _, p := range [][2]int64{{995, 1004}, {1000, 1000}, {1234, 5678}, {111, 111}, {64, 125}, {305, 7}} {
		check(p[0], p[1])
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	for _, p := range [][2]int64{{47, 53}, {98, 47}, {24, 35}, {-12, 34}, {16, 37}} {
		first, err := SelectOptimalMethod(p[0], p[1])
		require.NoError(t, err)
		second, err := SelectOptimalMethod(p[0], p[1])
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%d × %d ranking changed between calls (-first +second):\n%s", p[0], p[1], diff)
		}
	}
}

func TestApplicabilityIsOrderInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	for a := int64(-5); a <= 130; a += 3 {
		for b := int64(-5); b <= 130; b += 2 {
			for _, s := range Catalog() {
				assert.Equal(t, Applicable(s, a, b, cfg), Applicable(s, b, a, cfg), "%s on %d, %d", s, a, b)
			}
		}
	}
}

func TestPlaceValueIsTheUpperBound(t *testing.T) {
	cfg := DefaultConfig()
	for a := int64(1); a <= 150; a += 7 {
		for b := int64(1); b <= 150; b += 5 {
			pv := Cost(PlaceValue, a, b, cfg)
			assert.GreaterOrEqual(t, pv, 7.0)
			for _, s := range Catalog() {
				if s == PlaceValue || !Applicable(s, a, b, cfg) {
					continue
				}
				c := Cost(s, a, b, cfg)
				assert.Less(t, c, pv, "%s on %d × %d", s, a, b)
				assert.GreaterOrEqual(t, c, 1.0)
				assert.LessOrEqual(t, c, 5.0)
			}
		}
	}
}

func TestAlternativesExplainThemselves(t *testing.T) {
	r, err := SelectOptimalMethod(47, 53)
	require.NoError(t, err)
	require.NotEmpty(t, r.Alternatives)

	var pv *Alternative
	for i := range r.Alternatives {
		if r.Alternatives[i].Strategy == PlaceValue {
			pv = &r.Alternatives[i]
		}
	}
	require.NotNil(t, pv)
	assert.Contains(t, pv.WhyNotOptimal, "fallback")
	assert.Contains(t, pv.WhyNotOptimal, "Difference of Squares")
	assert.Equal(t, r.Alternatives, r.Optimal.Solution.Alternatives)

	assert.True(t, strings.HasPrefix(r.ComparisonSummary, "For 47 × 53 the best method is Difference of Squares"))
}

func TestMaxAlternativesBoundsRunnerUps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAlternatives = 1
	s := NewSelector(cfg)

	r, err := s.Select(97, 103)
	require.NoError(t, err)
	assert.Len(t, r.Alternatives, 1)

	cands, err := s.Candidates(97, 103)
	require.NoError(t, err)
	assert.Greater(t, len(cands), 2)
	assert.Equal(t, cands[0].Strategy, r.Optimal.Strategy)
	assert.Equal(t, cands[1].Strategy, r.Alternatives[0].Strategy)
}

func TestTighterBoundsExcludePatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NearHundredMaxDeviation = 2
	cfg.SymmetricMaxDeviation = 2
	s := NewSelector(cfg)

	r, err := s.Select(97, 103)
	require.NoError(t, err)
	assert.NotEqual(t, NearHundred, r.Optimal.Strategy)
	assert.NotEqual(t, DifferenceOfSquares, r.Optimal.Strategy)
	assert.Equal(t, int64(9991), r.Optimal.Solution.Answer())
}

func TestDeriveRejectsInapplicablePair(t *testing.T) {
	_, err := Derive(SquareEndingInFive, 47, 53, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotApplicable))
	assert.True(t, IsInvariant(err))

	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, SquareEndingInFive, ie.Strategy)
}

func TestSelectRejectsHugeOperands(t *testing.T) {
	_, err := SelectOptimalMethod(MaxOperand+1, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperandRange))
	assert.False(t, IsInvariant(err))
}

func TestMustSelectPanicsOnBadInput(t *testing.T) {
	s := NewSelector(DefaultConfig())
	assert.NotPanics(t, func() { s.MustSelect(12, 12) })
	assert.Panics(t, func() { s.MustSelect(-MaxOperand-1, 1) })
}

// corrupting returns a derive func that breaks the final step of bad.
func corrupting(bad Strategy) func(Strategy, int64, int64, Config) (*Solution, error) {
	return func(st Strategy, a, b int64, cfg Config) (*Solution, error) {
		sol, err := Derive(st, a, b, cfg)
		if err != nil || st != bad {
			return sol, err
		}
		sol.Steps[len(sol.Steps)-1].Result++
		return sol, nil
	}
}

func TestSelectFailsLoudlyOnInvalidWinner(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := NewSelector(DefaultConfig(), WithLogger(zap.New(core)))
	s.derive = corrupting(DifferenceOfSquares)

	r, err := s.Select(47, 53)
	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, IsInvariant(err))
	assert.ErrorIs(t, err, ErrInvalidDerivation)

	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, DifferenceOfSquares, ie.Strategy)
	assert.NotEmpty(t, ie.Details)
	assert.Equal(t, 1, logs.FilterMessage("optimal derivation rejected").Len())
}

func TestSelectDropsInvalidAlternative(t *testing.T) {
	s := NewSelector(DefaultConfig())
	cands, err := s.Candidates(47, 53)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cands), 2)
	runnerUp := cands[1].Strategy

	s.derive = corrupting(runnerUp)
	r, err := s.Select(47, 53)
	require.NoError(t, err)
	assert.Equal(t, DifferenceOfSquares, r.Optimal.Strategy)
	for _, alt := range r.Alternatives {
		assert.NotEqual(t, runnerUp, alt.Strategy)
	}

	clean, err := NewSelector(DefaultConfig()).Select(47, 53)
	require.NoError(t, err)
	assert.Len(t, r.Alternatives, min(len(clean.Alternatives), len(cands)-2))
}
