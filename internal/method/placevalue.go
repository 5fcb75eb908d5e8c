package method

import (
	"fmt"
	"strings"
)

// placeSplit picks the operand with more non-zero place-value parts, or the
// larger one on a tie, and returns it split alongside the other operand.
func placeSplit(ua, ub int64) (x, other int64, parts []int64, splitA bool) {
	pa, pb := placeParts(ua), placeParts(ub)
	if len(pa) > len(pb) || (len(pa) == len(pb) && ua > ub) {
		return ua, ub, pa, true
	}
	return ub, ua, pb, false
}

func placeValueCost(a, b int64) float64 {
	if a == 0 || b == 0 {
		return 7.0
	}
	ua, ub := abs64(a), abs64(b)
	if ua < 10 && ub < 10 {
		return 7.0
	}
	_, other, parts, _ := placeSplit(ua, ub)
	cost := 6.0 + float64(len(parts))
	if digits(other) > 2 {
		cost += 1.0
	}
	if a < 0 || b < 0 {
		cost += 0.5
	}
	return cost
}

func derivePlaceValue(a, b int64) derivation {
	product := a * b
	if a == 0 || b == 0 {
		return derivation{
			rationale: "One factor is zero, so the product is zero.",
			steps: []Step{
				step(equation(times(a, b), "0"), 0, "Anything times zero is zero", 0),
			},
		}
	}

	ua, ub := abs64(a), abs64(b)
	inner := placeValuePositive(ua, ub)
	switch {
	case a > 0 && b > 0:
		return inner
	case product > 0:
		inner.rationale = "Two negatives make a positive. " + inner.rationale
		inner.steps = append([]Step{
			step(equation(times(a, b), times(ua, ub)), product, "Two negative factors give a positive product", 0),
		}, inner.steps...)
		return inner
	}

	size := ua * ub
	steps := []Step{
		step(equation(times(a, b), minusSign+"("+times(ua, ub)+")"), product,
			"Exactly one factor is negative: multiply the sizes, then make the answer negative", 0),
	}
	steps = append(steps, inner.steps...)
	steps = append(steps, step(equation(minusSign+"("+num(size)+")", num(product)), product, "Put the sign back", 0))
	return derivation{
		rationale: "Exactly one factor is negative, so the product is negative. " + inner.rationale,
		steps:     steps,
	}
}

func placeValuePositive(ua, ub int64) derivation {
	product := ua * ub
	if ua < 10 && ub < 10 {
		return derivation{
			rationale: fmt.Sprintf("%d × %d is a times-table fact.", ua, ub),
			steps: []Step{
				step(equation(times(ua, ub), num(product)), product, "Times-table fact", 0),
			},
		}
	}

	x, other, parts, splitA := placeSplit(ua, ub)
	if len(parts) == 1 {
		ma, pa := splitPow10(ua)
		mb, pb := splitPow10(ub)
		lead := ma * mb
		return derivation{
			rationale: fmt.Sprintf("Multiply the leading digits %d × %d, then append the zeros of %d.", ma, mb, pa*pb),
			steps: []Step{
				step(equation(times(ua, ub), fmt.Sprintf("%d × %d × %d", ma, mb, pa*pb)), product,
					"Set the zeros aside", 0),
				step(equation(times(ma, mb), num(lead)), lead, "Multiply the leading digits", 0),
				step(equation(times(lead, pa*pb), num(product)), product,
					fmt.Sprintf("Append %d zeros", digits(pa*pb)-1), 0),
			},
		}
	}

	names := make([]string, len(parts))
	products := make([]string, len(parts))
	partials := make([]Step, len(parts))
	values := make([]int64, len(parts))
	for i, p := range parts {
		names[i] = num(p)
		expr := times(other, p)
		if splitA {
			expr = times(p, other)
		}
		products[i] = expr
		values[i] = p * other
		partials[i] = step(equation(expr, num(values[i])), values[i], fmt.Sprintf("Multiply %d by %d", p, other), 1)
	}

	joined := strings.Join(names, " + ")
	rewritten := fmt.Sprintf("%d × (%s)", other, joined)
	if splitA {
		rewritten = fmt.Sprintf("(%s) × %d", joined, other)
	}

	return derivation{
		rationale: fmt.Sprintf("Split %d into %s and multiply each part by %d; place value works for any pair.", x, joined, other),
		steps: []Step{
			step(equation(times(ua, ub), rewritten), product, fmt.Sprintf("Split %d by place value", x), 0),
			step(equation(strings.Join(products, " + "), sumExpr(values...)), product,
				"Multiply each part", 0, partials...),
			step(equation(sumExpr(values...), num(product)), product, "Add the partial products", 0),
		},
	}
}
