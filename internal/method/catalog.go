package method

import "math"

// Applicable reports whether s fits a × b. The answer does not depend on
// operand order.
func Applicable(s Strategy, a, b int64, cfg Config) bool {
	cfg = cfg.withDefaults()
	switch s {
	case SquareEndingInFive:
		return squareEndingInFiveApplicable(a, b)
	case SameTensUnitsSumTen:
		return sameTensApplicable(a, b)
	case MultiplyBy111:
		return by111Applicable(a, b)
	case NearHundred:
		return nearHundredApplicable(a, b, cfg)
	case Squaring:
		return squaringApplicable(a, b)
	case DifferenceOfSquares:
		return differenceOfSquaresApplicable(a, b, cfg)
	case NearEqualSquares:
		return nearEqualApplicable(a, b)
	case NearPowerOfTen:
		return powerOfTenApplicable(a, b, cfg)
	case Factorization:
		return factorizationApplicable(a, b)
	case PlaceValue:
		return true
	}
	return false
}

// Cost estimates the mental effort of s on a × b. Lower is easier.
// Shortcuts land in [1, 5]; the place-value fallback never drops below 7.
// An inapplicable strategy costs +Inf.
func Cost(s Strategy, a, b int64, cfg Config) float64 {
	cfg = cfg.withDefaults()
	if !Applicable(s, a, b, cfg) {
		return math.Inf(1)
	}
	switch s {
	case SquareEndingInFive:
		return squareEndingInFiveCost(a)
	case SameTensUnitsSumTen:
		return sameTensCost(a)
	case MultiplyBy111:
		return by111Cost(a, b)
	case NearHundred:
		return nearHundredCost(a, b)
	case Squaring:
		return squaringCost(a)
	case DifferenceOfSquares:
		return differenceOfSquaresCost(a, b)
	case NearEqualSquares:
		return nearEqualCost(a, b)
	case NearPowerOfTen:
		return powerOfTenCost(a, b, cfg)
	case Factorization:
		return factorizationCost(a, b)
	case PlaceValue:
		return placeValueCost(a, b)
	}
	return math.Inf(1)
}

// Quality scores how elegant s is on a × b, in [0, 1]. Higher is better.
func Quality(s Strategy, a, b int64, cfg Config) float64 {
	cfg = cfg.withDefaults()
	if !Applicable(s, a, b, cfg) {
		return 0
	}
	switch s {
	case SquareEndingInFive:
		return 1.0
	case SameTensUnitsSumTen:
		return 0.95
	case MultiplyBy111:
		return 0.9
	case NearHundred:
		return nearHundredQuality(a, b)
	case Squaring:
		return squaringQuality(a)
	case DifferenceOfSquares:
		return differenceOfSquaresQuality(a, b)
	case NearEqualSquares:
		return nearEqualQuality(a, b)
	case NearPowerOfTen:
		return powerOfTenQuality(a, b, cfg)
	case Factorization:
		return factorizationQuality(a, b)
	case PlaceValue:
		return 0.5
	}
	return 0
}

// Derive produces the worked steps of s for a × b. The result is not yet
// validated. Deriving an inapplicable strategy is an *InvariantError.
func Derive(s Strategy, a, b int64, cfg Config) (*Solution, error) {
	cfg = cfg.withDefaults()
	if !Applicable(s, a, b, cfg) {
		return nil, &InvariantError{Strategy: s, A: a, B: b, Err: ErrNotApplicable}
	}

	var d derivation
	switch s {
	case SquareEndingInFive:
		d = deriveSquareEndingInFive(a)
	case SameTensUnitsSumTen:
		d = deriveSameTens(a, b)
	case MultiplyBy111:
		d = deriveBy111(a, b)
	case NearHundred:
		d = deriveNearHundred(a, b)
	case Squaring:
		d = deriveSquaring(a)
	case DifferenceOfSquares:
		d = deriveDifferenceOfSquares(a, b)
	case NearEqualSquares:
		d = deriveNearEqual(a, b)
	case NearPowerOfTen:
		d = derivePowerOfTen(a, b, cfg)
	case Factorization:
		d = deriveFactorization(a, b)
	case PlaceValue:
		d = derivePlaceValue(a, b)
	default:
		return nil, &InvariantError{Strategy: s, A: a, B: b, Err: ErrNotApplicable}
	}

	return &Solution{
		Strategy:  s,
		Rationale: d.rationale,
		Steps:     d.steps,
	}, nil
}

type derivation struct {
	rationale string
	steps     []Step
}

func step(expr string, result int64, explanation string, depth int, subs ...Step) Step {
	return Step{
		Expression:  expr,
		Result:      result,
		Explanation: explanation,
		Depth:       depth,
		SubSteps:    subs,
	}
}

// shortcut reports whether a pair may use anything but place value:
// both operands positive and not both single digits.
func shortcut(a, b int64) bool {
	return a > 0 && b > 0 && (a >= 10 || b >= 10)
}
