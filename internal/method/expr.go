package method

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

var (
	// ErrUnparseable is returned when an expression segment is not integer arithmetic.
	ErrUnparseable = errors.New("expression is not integer arithmetic")

	// ErrOverflow is returned when a literal or an intermediate value does
	// not fit in an int64.
	ErrOverflow = errors.New("expression overflows int64")
)

// addExact returns x + y, or ErrOverflow if the sum wraps.
func addExact(x, y int64) (int64, error) {
	s := x + y
	if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, x, y)
	}
	return s, nil
}

func negExact(x int64) (int64, error) {
	if x == math.MinInt64 {
		return 0, fmt.Errorf("%w: −(%d)", ErrOverflow, x)
	}
	return -x, nil
}

// mulExact returns x × y, or ErrOverflow if the product wraps.
func mulExact(x, y int64) (int64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	p := x * y
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) || p/y != x {
		return 0, fmt.Errorf("%w: %d × %d", ErrOverflow, x, y)
	}
	return p, nil
}

type tokenKind int

const (
	tokNum tokenKind = iota
	tokPlus
	tokMinus
	tokMul
	tokDiv
	tokPow
	tokSquare
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	val  int64
}

func tokenize(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
		case r >= '0' && r <= '9':
			var v int64
			for ; i < len(runes) && runes[i] >= '0' && runes[i] <= '9'; i++ {
				d := int64(runes[i] - '0')
				if v > (math.MaxInt64-d)/10 {
					return nil, fmt.Errorf("%w: literal too large", ErrOverflow)
				}
				v = v*10 + d
			}
			i--
			toks = append(toks, token{kind: tokNum, val: v})
		case r == '+':
			toks = append(toks, token{kind: tokPlus})
		case r == '-' || r == '−':
			toks = append(toks, token{kind: tokMinus})
		case r == '×' || r == '*' || r == '·':
			toks = append(toks, token{kind: tokMul})
		case r == '÷' || r == '/':
			toks = append(toks, token{kind: tokDiv})
		case r == '^':
			toks = append(toks, token{kind: tokPow})
		case r == '²':
			toks = append(toks, token{kind: tokSquare})
		case r == '(':
			toks = append(toks, token{kind: tokLParen})
		case r == ')':
			toks = append(toks, token{kind: tokRParen})
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrUnparseable, r)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() tokenKind { return p.toks[p.pos].kind }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// terms parses a full expression and returns its top-level signed terms.
func (p *parser) terms() ([]int64, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	out := []int64{first}
	for p.peek() == tokPlus || p.peek() == tokMinus {
		minus := p.next().kind == tokMinus
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if minus {
			if t, err = negExact(t); err != nil {
				return nil, err
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (p *parser) expr() (int64, error) {
	ts, err := p.terms()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, t := range ts {
		if total, err = addExact(total, t); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func (p *parser) term() (int64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.peek() == tokMul || p.peek() == tokDiv {
		op := p.next().kind
		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == tokMul {
			if v, err = mulExact(v, rhs); err != nil {
				return 0, err
			}
			continue
		}
		if v == math.MinInt64 && rhs == -1 {
			return 0, fmt.Errorf("%w: %d ÷ -1", ErrOverflow, v)
		}
		if rhs == 0 || v%rhs != 0 {
			return 0, fmt.Errorf("%w: inexact division %d ÷ %d", ErrUnparseable, v, rhs)
		}
		v /= rhs
	}
	return v, nil
}

func (p *parser) unary() (int64, error) {
	switch p.peek() {
	case tokMinus:
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return negExact(v)
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (int64, error) {
	v, err := p.primary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case tokSquare:
			p.next()
			if v, err = mulExact(v, v); err != nil {
				return 0, err
			}
		case tokPow:
			p.next()
			e, err := p.unary()
			if err != nil {
				return 0, err
			}
			if e < 0 || e > 62 {
				return 0, fmt.Errorf("%w: exponent %d", ErrUnparseable, e)
			}
			base := v
			v = 1
			for i := int64(0); i < e; i++ {
				if v, err = mulExact(v, base); err != nil {
					return 0, err
				}
			}
		default:
			return v, nil
		}
	}
}

func (p *parser) primary() (int64, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return t.val, nil
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.next().kind != tokRParen {
			return 0, fmt.Errorf("%w: missing )", ErrUnparseable)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: unexpected token", ErrUnparseable)
}

func parse(s string) (*parser, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnparseable)
	}
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

// Evaluate computes an integer arithmetic expression such as "50² − 3²".
func Evaluate(s string) (int64, error) {
	p, err := parse(s)
	if err != nil {
		return 0, err
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.peek() != tokEOF {
		return 0, fmt.Errorf("%w: trailing input in %q", ErrUnparseable, s)
	}
	return v, nil
}

// TopLevelTerms evaluates each additive term of s separately, keeping its sign.
// "2500 − 9" yields [2500, −9].
func TopLevelTerms(s string) ([]int64, error) {
	p, err := parse(s)
	if err != nil {
		return nil, err
	}
	ts, err := p.terms()
	if err != nil {
		return nil, err
	}
	if p.peek() != tokEOF {
		return nil, fmt.Errorf("%w: trailing input in %q", ErrUnparseable, s)
	}
	return ts, nil
}

// segments splits an expression on "=".
func segments(expr string) []string {
	parts := strings.Split(expr, "=")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
