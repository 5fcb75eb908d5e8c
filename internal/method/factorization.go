package method

import (
	"fmt"
	"math"
	"strings"
)

type factorPlan struct {
	x, y      int64
	f, g      int64
	doublings int
	cost      float64
}

func (p factorPlan) doubling() bool { return p.doublings > 0 }

// better orders plans by cost, then round plans before doubling chains,
// then smallest f + g, then smallest f.
func (p factorPlan) better(than factorPlan) bool {
	if p.cost != than.cost {
		return p.cost < than.cost
	}
	if p.doubling() != than.doubling() {
		return !p.doubling()
	}
	if p.f+p.g != than.f+than.g {
		return p.f+p.g < than.f+than.g
	}
	return p.f < than.f
}

func planFactorization(a, b int64) (factorPlan, bool) {
	var best factorPlan
	found := false
	consider := func(c factorPlan) {
		if !found || c.better(best) {
			best, found = c, true
		}
	}

	for _, xy := range [][2]int64{{a, b}, {b, a}} {
		x, y := xy[0], xy[1]
		if y < 2 {
			continue
		}
		for f := int64(2); f <= 12; f++ {
			if x%f != 0 {
				continue
			}
			g := x / f
			if g < 2 || g > 12 || (f*y)%10 != 0 {
				continue
			}
			cost := 2.0
			if g >= 10 {
				cost += 0.5
			}
			if f*y >= 1000 {
				cost += 0.5
			}
			consider(factorPlan{x: x, y: y, f: f, g: g, cost: cost})
		}
		if k := doublingsOf(x); k > 0 {
			cost := 1.0 + 0.75*float64(k)
			if y >= 100 {
				cost += 0.5
			}
			consider(factorPlan{x: x, y: y, doublings: k, cost: math.Min(cost, 5)})
		}
	}
	return best, found
}

// doublingsOf returns k when x is 2^k for k in [2, 6], otherwise 0.
func doublingsOf(x int64) int {
	switch x {
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	case 32:
		return 5
	case 64:
		return 6
	}
	return 0
}

func factorizationApplicable(a, b int64) bool {
	if !shortcut(a, b) {
		return false
	}
	_, ok := planFactorization(a, b)
	return ok
}

func factorizationCost(a, b int64) float64 {
	p, _ := planFactorization(a, b)
	return p.cost
}

func factorizationQuality(a, b int64) float64 {
	if p, _ := planFactorization(a, b); p.doubling() {
		return 0.65
	}
	return 0.7
}

func deriveFactorization(a, b int64) derivation {
	p, _ := planFactorization(a, b)
	product := a * b

	if p.doubling() {
		twos := strings.TrimSuffix(strings.Repeat("2 × ", p.doublings), " × ")
		steps := []Step{
			step(equation(times(a, b), fmt.Sprintf("%d × %s", p.y, twos)), product,
				fmt.Sprintf("%d is %s", p.x, twos), 0),
		}
		v := p.y
		for i := 0; i < p.doublings; i++ {
			steps = append(steps, step(equation(times(v, 2), num(2*v)), 2*v,
				fmt.Sprintf("Double %d", v), 0))
			v *= 2
		}
		return derivation{
			rationale: fmt.Sprintf("%d is %s, so double %d %d times.", p.x, twos, p.y, p.doublings),
			steps:      steps,
		}
	}

	round := p.f * p.y
	return derivation{
		rationale: fmt.Sprintf("%d = %d × %d, and %d × %d = %d is a round number, so finish with %d × %d.",
			p.x, p.f, p.g, p.f, p.y, round, p.g, round),
		steps: []Step{
			step(equation(times(a, b), fmt.Sprintf("%d × %d × %d", p.f, p.g, p.y)), product,
				fmt.Sprintf("Split %d into %d × %d", p.x, p.f, p.g), 0),
			step(equation(times(p.f, p.y), num(round)), round,
				fmt.Sprintf("%d × %d lands on the round number %d", p.f, p.y, round), 0),
			step(equation(times(p.g, round), num(product)), product,
				fmt.Sprintf("Finish with %d × %d", p.g, round), 0),
		},
	}
}
