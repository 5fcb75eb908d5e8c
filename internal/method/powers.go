package method

import (
	"fmt"
	"math"
)

var powersOfTen = []int64{10, 100, 1000}

type powerPlan struct {
	x, y   int64
	p, dev int64
	xIsA   bool
}

// planPowerOfTen finds the operand closest to a power of ten. Ties go to
// a, then to the smaller power.
func planPowerOfTen(a, b int64, cfg Config) (powerPlan, bool) {
	var best powerPlan
	found := false
	for _, c := range []powerPlan{{x: a, y: b, xIsA: true}, {x: b, y: a}} {
		if c.y < 2 {
			continue
		}
		for _, p := range powersOfTen {
			bound := min(cfg.PowerOfTenMaxDeviation, p/5)
			dev := c.x - p
			if abs64(dev) > bound {
				continue
			}
			if !found || abs64(dev) < abs64(best.dev) {
				best = powerPlan{x: c.x, y: c.y, p: p, dev: dev, xIsA: c.xIsA}
				found = true
			}
		}
	}
	return best, found
}

func powerOfTenApplicable(a, b int64, cfg Config) bool {
	if !shortcut(a, b) {
		return false
	}
	_, ok := planPowerOfTen(a, b, cfg)
	return ok
}

func powerOfTenCost(a, b int64, cfg Config) float64 {
	pl, _ := planPowerOfTen(a, b, cfg)
	if pl.dev == 0 {
		return 1.0
	}
	cost := 2.0
	d := abs64(pl.dev)
	if d > 1 {
		cost += 0.5
	}
	if d > 5 {
		cost += 0.5
	}
	if pl.y >= 100 {
		cost += 0.5
	}
	if pl.y >= 1000 {
		cost += 0.5
	}
	return math.Min(cost, 5)
}

func powerOfTenQuality(a, b int64, cfg Config) float64 {
	pl, _ := planPowerOfTen(a, b, cfg)
	switch d := abs64(pl.dev); {
	case d == 0:
		return 0.95
	case d <= 2:
		return 0.85
	}
	return 0.7
}

func derivePowerOfTen(a, b int64, cfg Config) derivation {
	pl, _ := planPowerOfTen(a, b, cfg)
	product := a * b
	zeros := digits(pl.p) - 1

	if pl.dev == 0 {
		return derivation{
			rationale: fmt.Sprintf("%d is a power of ten, so append %d zeros to %d.", pl.p, zeros, pl.y),
			steps: []Step{
				step(equation(times(a, b), times(pl.y, pl.p)), product, "Put the power of ten last", 0),
				step(equation(times(pl.y, pl.p), num(product)), product,
					fmt.Sprintf("Multiplying by %d appends %d zeros", pl.p, zeros), 0),
			},
		}
	}

	rewritten := grouped(pl.p, pl.dev) + " × " + num(pl.y)
	if !pl.xIsA {
		rewritten = num(pl.y) + " × " + grouped(pl.p, pl.dev)
	}

	d := abs64(pl.dev)
	big := pl.p * pl.y
	corr := pl.dev * pl.y
	corrExpr := fmt.Sprintf("%d × %d = %d", d, pl.y, corr)
	sign, verb, rel := "+", "add", "more"
	if pl.dev < 0 {
		corrExpr = fmt.Sprintf("%s%d × %d = %s", minusSign, d, pl.y, num(corr))
		sign, verb, rel = minusSign, "subtract", "less"
	}

	return derivation{
		rationale: fmt.Sprintf("%d is %d %s than %d, so take %d × %d and %s %d × %d.",
			pl.x, d, rel, pl.p, pl.p, pl.y, verb, d, pl.y),
		steps: []Step{
			step(equation(times(a, b), rewritten), product,
				fmt.Sprintf("%d is %d %s than %d", pl.x, d, rel, pl.p), 0),
			step(equation(fmt.Sprintf("%d × %d %s %d × %d", pl.p, pl.y, sign, d, pl.y), sumExpr(big, corr)), product,
				"Distribute over the power of ten and the correction", 0,
				step(fmt.Sprintf("%d × %d = %d", pl.p, pl.y, big), big,
					fmt.Sprintf("Multiplying by %d appends %d zeros", pl.p, zeros), 1),
				step(corrExpr, corr, "The correction", 1)),
			step(equation(sumExpr(big, corr), num(product)), product, "Apply the correction", 0),
		},
	}
}

func nearHundredApplicable(a, b int64, cfg Config) bool {
	bound := cfg.NearHundredMaxDeviation
	return shortcut(a, b) && abs64(a-100) <= bound && abs64(b-100) <= bound
}

func nearHundredCost(a, b int64) float64 {
	da, db := a-100, b-100
	cost := 1.25
	if da*db < 0 {
		cost += 0.25
	}
	if max(abs64(da), abs64(db)) > 5 {
		cost += 0.5
	}
	return cost
}

func nearHundredQuality(a, b int64) float64 {
	if max(abs64(a-100), abs64(b-100)) > 5 {
		return 0.85
	}
	return 0.95
}

func deriveNearHundred(a, b int64) derivation {
	da, db := a-100, b-100
	product := a * b
	cross := 100 * (da + db)
	tail := da * db
	devs := fmt.Sprintf("(%s + %s)", operand(da), operand(db))
	return derivation{
		rationale: fmt.Sprintf("%d and %d are both within %d of 100, so start from 100 × 100 = 10000 and adjust by the deviations %s and %s.",
			a, b, max(abs64(da), abs64(db)), num(da), num(db)),
		steps: []Step{
			step(equation(times(a, b), grouped(100, da)+" × "+grouped(100, db)), product,
				"Write both numbers as 100 plus or minus a deviation", 0),
			step(equation(fmt.Sprintf("100² + 100 × %s + %s", devs, times(da, db)), sumExpr(10000, cross, tail)), product,
				"(100 + da) × (100 + db) = 10000 + 100 × (da + db) + da × db", 0,
				step("100² = 10000", 10000, "Start from 100 × 100", 1),
				step(equation("100 × "+devs, num(cross)), cross, "Shift by the combined deviation", 1),
				step(equation(times(da, db), num(tail)), tail, "Multiply the deviations", 1)),
			step(equation(sumExpr(10000, cross, tail), num(product)), product, "Add up", 0),
		},
	}
}
