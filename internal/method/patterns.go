package method

import "fmt"

func sameTensApplicable(a, b int64) bool {
	return shortcut(a, b) && a >= 10 && b >= 10 &&
		a/10 == b/10 && a%10+b%10 == 10
}

func sameTensCost(a int64) float64 {
	if a/10 >= 10 {
		return 2.25
	}
	return 1.25
}

func deriveSameTens(a, b int64) derivation {
	t := a / 10
	ua, ub := a%10, b%10
	hundreds := t * (t + 1) * 100
	units := ua * ub
	product := a * b
	return derivation{
		rationale: fmt.Sprintf("%d and %d share the tens part %d and their units %d + %d make 10: multiply %d × %d for the hundreds and %d × %d for the rest.",
			a, b, t, ua, ub, t, t+1, ua, ub),
		steps: []Step{
			step(equation(times(a, b), fmt.Sprintf("(%s) × (%s)", offset(10*t, ua), offset(10*t, ub))), product,
				fmt.Sprintf("Same tens part %d, units %d and %d add to 10", t, ua, ub), 0),
			step(equation(fmt.Sprintf("%d × %d × 100 + %d × %d", t, t+1, ua, ub), sumExpr(hundreds, units)), product,
				"Tens part times its successor gives the hundreds; the units multiply on their own", 0,
				step(fmt.Sprintf("%d × %d × 100 = %d", t, t+1, hundreds), hundreds,
					fmt.Sprintf("Multiply %d by the next number, %d", t, t+1), 1),
				step(fmt.Sprintf("%d × %d = %d", ua, ub, units), units, "Multiply the units", 1)),
			step(equation(sumExpr(hundreds, units), num(product)), product, "Put the two parts together", 0),
		},
	}
}

func by111Applicable(a, b int64) bool {
	return shortcut(a, b) && ((a == 111 && b >= 2) || (b == 111 && a >= 2))
}

func by111Other(a, b int64) int64 {
	if a == 111 {
		return b
	}
	return a
}

func by111Cost(a, b int64) float64 {
	y := by111Other(a, b)
	cost := 1.5
	if y >= 10 {
		cost += 0.5
	}
	if y >= 100 {
		cost += 0.5
	}
	return cost
}

func deriveBy111(a, b int64) derivation {
	y := by111Other(a, b)
	product := a * b
	parts := []int64{100 * y, 10 * y, y}
	return derivation{
		rationale: fmt.Sprintf("111 is 100 + 10 + 1, so add %d × 100, %d × 10 and %d.", y, y, y),
		steps: []Step{
			step(equation(times(a, b), fmt.Sprintf("%d × (100 + 10 + 1)", y)), product,
				"Split 111 into 100 + 10 + 1", 0),
			step(equation(fmt.Sprintf("%d × 100 + %d × 10 + %d", y, y, y), sumExpr(parts...)), product,
				"Multiply by each part", 0,
				step(fmt.Sprintf("%d × 100 = %d", y, parts[0]), parts[0], "Append two zeros", 1),
				step(fmt.Sprintf("%d × 10 = %d", y, parts[1]), parts[1], "Append one zero", 1),
				step(fmt.Sprintf("%d × 1 = %d", y, y), y, "The number itself", 1)),
			step(equation(sumExpr(parts...), num(product)), product, "Add the three parts", 0),
		},
	}
}
