package method

import (
	"fmt"
	"math"
)

func midpoint(a, b int64) (m, d int64) {
	return (a + b) / 2, abs64(a-b) / 2
}

func differenceOfSquaresApplicable(a, b int64, cfg Config) bool {
	if !shortcut(a, b) || a == b || (a+b)%2 != 0 {
		return false
	}
	m, d := midpoint(a, b)
	return m >= 10 && d <= cfg.SymmetricMaxDeviation
}

func differenceOfSquaresCost(a, b int64) float64 {
	m, d := midpoint(a, b)
	cost := 1.5
	switch {
	case m%10 == 0:
	case m%5 == 0:
		cost += 1.0
	default:
		cost += 2.5
	}
	if d > 5 {
		cost += 0.5
	}
	if m > 100 && m%100 != 0 {
		cost += 0.5
	}
	return math.Min(cost, 5)
}

func differenceOfSquaresQuality(a, b int64) float64 {
	m, _ := midpoint(a, b)
	switch {
	case m%10 == 0:
		return 0.9
	case m%5 == 0:
		return 0.75
	}
	return 0.6
}

func deriveDifferenceOfSquares(a, b int64) derivation {
	m, d := midpoint(a, b)
	product := a * b
	msq, dsq := m*m, d*d
	subs := []Step{
		squareStep(m, 1),
		step(fmt.Sprintf("%s%d² = %s", minusSign, d, num(-dsq)), -dsq, "Take away the square of the distance", 1),
	}
	return derivation{
		rationale: fmt.Sprintf("%d and %d sit %d either side of %d, so the product is %d² − %d².", a, b, d, m, m, d),
		steps: []Step{
			step(equation(times(a, b), grouped(m, a-m)+" × "+grouped(m, b-m)), product,
				fmt.Sprintf("%d and %d are both %d away from %d", a, b, d, m), 0),
			step(equation(fmt.Sprintf("%d² %s %d²", m, minusSign, d), sumExpr(msq, -dsq)), product,
				"(m − d) × (m + d) = m² − d²", 0, subs...),
			step(equation(sumExpr(msq, -dsq), num(product)), product, "Subtract", 0),
		},
	}
}

func nearEqualApplicable(a, b int64) bool {
	diff := abs64(a - b)
	return shortcut(a, b) && (diff == 1 || diff == 2)
}

func roundness(n int64) int {
	switch {
	case n%10 == 0:
		return 0
	case n%5 == 0:
		return 1
	}
	return 2
}

// nearEqualBase picks the operand to square, preferring round numbers and
// then the smaller one. k is what the other operand adds to it.
func nearEqualBase(a, b int64) (n, k int64) {
	ra, rb := roundness(a), roundness(b)
	if ra < rb || (ra == rb && a < b) {
		return a, b - a
	}
	return b, a - b
}

func nearEqualCost(a, b int64) float64 {
	n, k := nearEqualBase(a, b)
	base := [...]float64{1.75, 2.75, 3.5}[roundness(n)]
	cost := base + 0.25*float64(abs64(k))
	if n > 100 && n%100 != 0 {
		cost += 0.5
	}
	return math.Min(cost, 5)
}

func nearEqualQuality(a, b int64) float64 {
	n, _ := nearEqualBase(a, b)
	return [...]float64{0.8, 0.7, 0.55}[roundness(n)]
}

func deriveNearEqual(a, b int64) derivation {
	n, k := nearEqualBase(a, b)
	product := a * b
	other := n + k

	rewritten := fmt.Sprintf("%d × (%s)", n, offset(n, k))
	if n == b {
		rewritten = fmt.Sprintf("(%s) × %d", offset(n, k), n)
	}

	correction := k * n
	corrExpr := fmt.Sprintf("%d × %d = %d", k, n, correction)
	verb, rel := "add", "more"
	if k < 0 {
		corrExpr = fmt.Sprintf("%s%d × %d = %s", minusSign, -k, n, num(correction))
		verb, rel = "take away", "less"
	}

	adjust := fmt.Sprintf("%d", n)
	if abs64(k) > 1 {
		adjust = fmt.Sprintf("%d × %d", abs64(k), n)
	}
	sign := "+"
	if k < 0 {
		sign = minusSign
	}
	first := fmt.Sprintf("%d² %s %s", n, sign, adjust)

	msq := n * n
	return derivation{
		rationale: fmt.Sprintf("%d is %d %s than %d, so square %d and %s %s.", other, abs64(k), rel, n, n, verb, adjust),
		steps: []Step{
			step(equation(times(a, b), rewritten), product,
				fmt.Sprintf("%d is %d %s than %d", other, abs64(k), rel, n), 0),
			step(equation(first, sumExpr(msq, correction)), product,
				fmt.Sprintf("Square %d, then %s %s", n, verb, adjust), 0,
				squareStep(n, 1),
				step(corrExpr, correction, "The extra copies of the base", 1)),
			step(equation(sumExpr(msq, correction), num(product)), product, "Combine", 0),
		},
	}
}
