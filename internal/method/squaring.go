package method

import (
	"fmt"
	"math"
)

func squaringApplicable(a, b int64) bool {
	return shortcut(a, b) && a == b && a >= 10
}

func squaringCost(n int64) float64 {
	if n%10 == 0 {
		m, _ := splitPow10(n)
		if m < 10 {
			return 1.0
		}
		return math.Min(0.5+squaringCost(m), 5)
	}
	cost := 2.0
	x := nearestTen(n)
	if x >= 100 {
		cost += 0.5
	}
	if x >= 1000 {
		cost += 1.0
	}
	return math.Min(cost, 5)
}

func squaringQuality(n int64) float64 {
	if n%10 == 0 {
		return 0.95
	}
	if abs64(n-nearestTen(n)) <= 2 {
		return 0.9
	}
	return 0.85
}

func deriveSquaring(n int64) derivation {
	sq := n * n
	if n%10 == 0 {
		m, p := splitPow10(n)
		core := squareStep(m, 0)
		return derivation{
			rationale: fmt.Sprintf("%d is %d × %d, so square %d and multiply by %d.", n, m, p, m, p*p),
			steps: []Step{
				step(equation(times(n, n), fmt.Sprintf("%d × %d × %d", m, m, p*p)), sq,
					fmt.Sprintf("Pull the factor %d out of both copies of %d", p, n), 0),
				core,
				step(equation(times(m*m, p*p), num(sq)), sq,
					fmt.Sprintf("Multiplying by %d appends %d zeros", p*p, 2*(digits(p)-1)), 0),
			},
		}
	}

	x := nearestTen(n)
	y := n - x
	subs := expansionTerms(x, y, 1)
	expanded := sumExpr(results(subs)...)
	return derivation{
		rationale: fmt.Sprintf("Write %d as %s and expand the square: %s.", n, offset(x, y), expansionText(x, y)),
		steps: []Step{
			step(equation(times(n, n), "("+offset(x, y)+")²"), sq,
				fmt.Sprintf("Split %d at the nearest ten, %d", n, x), 0),
			step(equation(expansionText(x, y), expanded), sq,
				"Square the round part, add or take away twice the cross product, add the small square", 0, subs...),
			step(equation(expanded, num(sq)), sq, "Combine the three parts", 0),
		},
	}
}

// squareStep squares n ≥ 0 as a single step, expanding around the
// nearest ten when n is not already round.
func squareStep(n int64, depth int) Step {
	sq := n * n
	if n < 10 {
		return step(fmt.Sprintf("%s² = %s", num(n), num(sq)), sq, "Times-table square", depth)
	}
	if n%10 == 0 {
		m, p := splitPow10(n)
		return step(fmt.Sprintf("%s² = %s", num(n), num(sq)), sq,
			fmt.Sprintf("%d² = %d, then append %d zeros", m, m*m, 2*(digits(p)-1)), depth)
	}
	x := nearestTen(n)
	subs := expansionTerms(x, n-x, depth+1)
	return step(fmt.Sprintf("%s² = %s", num(n), sumExpr(results(subs)...)), sq,
		fmt.Sprintf("Expand (%s)²", offset(x, n-x)), depth, subs...)
}

// expansionTerms returns the three signed parts of (x + y)².
func expansionTerms(x, y int64, depth int) []Step {
	cross := 2 * x * y
	crossExpr := fmt.Sprintf("2 × %d × %d = %s", x, y, num(cross))
	if y < 0 {
		crossExpr = fmt.Sprintf("%s2 × %d × %d = %s", minusSign, x, -y, num(cross))
	}
	return []Step{
		squareStep(x, depth),
		step(crossExpr, cross, "Twice the round part times the offset", depth),
		step(fmt.Sprintf("%d² = %d", abs64(y), y*y), y*y, "Square the offset", depth),
	}
}

// expansionText renders x² ± 2 × x × |y| + y².
func expansionText(x, y int64) string {
	sign := "+"
	if y < 0 {
		sign = minusSign
	}
	return fmt.Sprintf("%s² %s 2 × %d × %d + %d²", num(x), sign, x, abs64(y), abs64(y))
}

func squareEndingInFiveApplicable(a, b int64) bool {
	return shortcut(a, b) && a == b && a >= 15 && a%10 == 5
}

func squareEndingInFiveCost(n int64) float64 {
	if n/10 >= 10 {
		return 2.0
	}
	return 1.0
}

func deriveSquareEndingInFive(n int64) derivation {
	t := n / 10
	hundreds := t * (t + 1) * 100
	sq := n * n
	subs := []Step{
		step(fmt.Sprintf("%d × %d × 100 = %d", t, t+1, hundreds), hundreds,
			fmt.Sprintf("Multiply %d by the next number, %d", t, t+1), 1),
		step("5 × 5 = 25", 25, "The last two digits are always 25", 1),
	}
	return derivation{
		rationale: fmt.Sprintf("%d ends in 5: multiply %d by %d to get %d, then write 25 after it.", n, t, t+1, t*(t+1)),
		steps: []Step{
			step(equation(times(n, n), fmt.Sprintf("%d × %d × 100 + 25", t, t+1)), sq,
				fmt.Sprintf("%d ends in 5, so its tens part is %d", n, t), 0),
			step(equation(fmt.Sprintf("%d × %d × 100 + 5 × 5", t, t+1), sumExpr(hundreds, 25)), sq,
				"Work out the hundreds and the final 25", 0, subs...),
			step(equation(sumExpr(hundreds, 25), num(sq)), sq, "Write 25 after the hundreds", 0),
		},
	}
}
