package method

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

func whyNotOptimal(alt Candidate, altSteps []Step, best Candidate, bestSteps []Step) string {
	product := bestSteps[len(bestSteps)-1].Result
	var reasons []string

	if alt.Strategy == PlaceValue {
		reasons = append(reasons, "it is the general fallback that multiplies every place separately")
	}
	if extra := countSteps(altSteps) - countSteps(bestSteps); extra > 0 {
		reasons = append(reasons, fmt.Sprintf("it needs %d more arithmetic %s", extra, plural(extra, "step", "steps")))
	}
	if v, ok := firstNonRound(altSteps, product); ok {
		if _, bestToo := firstNonRound(bestSteps, product); !bestToo {
			reasons = append(reasons, fmt.Sprintf("it passes through the non-round value %s", num(v)))
		}
	}
	if len(reasons) == 0 {
		if alt.Cost == best.Cost {
			reasons = append(reasons, fmt.Sprintf("it ties on effort but is less elegant (quality %s vs %s)",
				score(alt.Quality), score(best.Quality)))
		} else {
			reasons = append(reasons, "it takes more mental effort")
		}
	}

	return upperFirst(strings.Join(reasons, "; ")) +
		fmt.Sprintf(" (cost %s vs %s for %s).", score(alt.Cost), score(best.Cost), best.Strategy.DisplayName())
}

// firstNonRound finds the first intermediate result that is neither a
// small number nor a multiple of ten nor the final product.
func firstNonRound(steps []Step, product int64) (int64, bool) {
	for _, s := range steps {
		r := abs64(s.Result)
		if r > 10 && r%10 != 0 && r != abs64(product) {
			return s.Result, true
		}
		if v, ok := firstNonRound(s.SubSteps, product); ok {
			return v, true
		}
	}
	return 0, false
}

func comparisonSummary(r *Ranking) string {
	opt := r.Optimal
	msg := fmt.Sprintf("For %s the best method is %s: %s",
		times(r.A, r.B), opt.Strategy.DisplayName(), opt.Solution.Rationale)

	switch n := len(r.Alternatives); {
	case n == 1:
		msg += fmt.Sprintf(" %s also works but ranks lower.", r.Alternatives[0].Strategy.DisplayName())
	case n > 1:
		msg += fmt.Sprintf(" %d other methods also work but rank lower.", n)
	case opt.Strategy == PlaceValue:
		msg += " No shortcut fits this pair."
	}
	return msg
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
