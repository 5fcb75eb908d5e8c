package method

import (
	"fmt"
	"slices"
)

// Validate replays a derivation of a × b and reports whether it certifies
// the product. It never trusts Step.Result blindly: sub-step sums are
// recomputed and expressions are evaluated where they can be parsed.
// Operands beyond ±MaxOperand are rejected since their product may not fit
// in an int64.
func Validate(a, b int64, steps []Step) ValidationResult {
	v := &validation{}
	if err := CheckOperands(a, b); err != nil {
		v.fail(err.Error())
		return v.result()
	}
	product := a * b

	if len(steps) == 0 {
		v.fail("derivation has no steps")
		return v.result()
	}

	first := steps[0]
	if first.Result != product && !startsFrom(first.Expression, product) {
		v.fail(fmt.Sprintf("step 1 does not start from %s (result %s)", times(a, b), num(first.Result)))
	}

	last := steps[len(steps)-1]
	if last.Result != product {
		v.fail(fmt.Sprintf("final step gives %s, want %s", num(last.Result), num(product)))
	}

	for i, s := range steps {
		v.check(fmt.Sprintf("step %d", i+1), s, 0)
	}
	return v.result()
}

func startsFrom(expr string, product int64) bool {
	segs := segments(expr)
	if len(segs) == 0 {
		return false
	}
	got, err := Evaluate(segs[0])
	return err == nil && got == product
}

func exactSum(steps []Step) (int64, error) {
	var total int64
	for _, s := range steps {
		var err error
		if total, err = addExact(total, s.Result); err != nil {
			return 0, err
		}
	}
	return total, nil
}

type validation struct {
	errors   []string
	warnings []string
}

func (v *validation) fail(msg string) { v.errors = append(v.errors, msg) }
func (v *validation) warn(msg string) { v.warnings = append(v.warnings, msg) }

func (v *validation) result() ValidationResult {
	return ValidationResult{
		Valid:    len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

func (v *validation) check(label string, s Step, depth int) {
	if s.Depth != depth {
		v.warn(fmt.Sprintf("%s: depth %d, expected %d", label, s.Depth, depth))
	}

	segs := segments(s.Expression)
	for _, seg := range segs {
		got, err := Evaluate(seg)
		if err != nil {
			v.warn(fmt.Sprintf("%s: %q is not machine-checkable", label, s.Expression))
			break
		}
		if got != s.Result {
			v.warn(fmt.Sprintf("%s: %q evaluates to %s, not %s", label, seg, num(got), num(s.Result)))
		}
	}

	if len(s.SubSteps) == 0 {
		return
	}

	total, err := exactSum(s.SubSteps)
	switch {
	case err != nil:
		v.fail(fmt.Sprintf("%s: sub-step sum: %v", label, err))
	case total != s.Result:
		v.fail(fmt.Sprintf("%s: sub-steps sum to %s, step claims %s", label, num(total), num(s.Result)))
	}

	if len(segs) > 0 {
		if terms, err := TopLevelTerms(segs[len(segs)-1]); err == nil {
			want := results(s.SubSteps)
			if !slices.Equal(terms, want) {
				v.warn(fmt.Sprintf("%s: terms %v do not line up with sub-step results %v", label, terms, want))
			}
		}
	}

	for j, sub := range s.SubSteps {
		v.check(fmt.Sprintf("%s.%d", label, j+1), sub, depth+1)
	}
}
