package method

import (
	"strconv"
	"strings"
)

const minusSign = "−"

// num formats n with a typographic minus.
func num(n int64) string {
	if n < 0 {
		return minusSign + strconv.FormatInt(-n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// operand formats n for use after a binary operator, parenthesizing negatives.
func operand(n int64) string {
	if n < 0 {
		return "(" + num(n) + ")"
	}
	return num(n)
}

// sumExpr renders signed terms as "a + b − c".
func sumExpr(terms ...int64) string {
	var sb strings.Builder
	for i, t := range terms {
		switch {
		case i == 0:
			sb.WriteString(num(t))
		case t < 0:
			sb.WriteString(" " + minusSign + " " + num(-t))
		default:
			sb.WriteString(" + " + num(t))
		}
	}
	return sb.String()
}

// offset renders base ± |d| without parentheses, or just base when d is 0.
func offset(base, d int64) string {
	switch {
	case d < 0:
		return num(base) + " " + minusSign + " " + num(-d)
	case d > 0:
		return num(base) + " + " + num(d)
	}
	return num(base)
}

// grouped wraps offset in parentheses when it has a correction term.
func grouped(base, d int64) string {
	if d == 0 {
		return num(base)
	}
	return "(" + offset(base, d) + ")"
}

func times(a, b int64) string {
	return operand(a) + " × " + operand(b)
}

func equation(parts ...string) string {
	return strings.Join(parts, " = ")
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func results(steps []Step) []int64 {
	out := make([]int64, len(steps))
	for i, s := range steps {
		out[i] = s.Result
	}
	return out
}

// nearestTen returns the multiple of ten closest to n, rounding a 5 down.
func nearestTen(n int64) int64 {
	r := n % 10
	if r <= 5 {
		return n - r
	}
	return n - r + 10
}

// splitPow10 returns m and a power of ten p with n == m × p and m not divisible by 10.
func splitPow10(n int64) (int64, int64) {
	if n == 0 {
		return 0, 0
	}
	var pow int64 = 1
	for n%10 == 0 {
		n /= 10
		pow *= 10
	}
	return n, pow
}

// placeParts splits n > 0 into its non-zero place-value parts, largest first.
func placeParts(n int64) []int64 {
	var parts []int64
	var place int64 = 1
	for n > 0 {
		if d := n % 10; d != 0 {
			parts = append(parts, d*place)
		}
		n /= 10
		place *= 10
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

func digits(n int64) int {
	n = abs64(n)
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
