// Package method picks the best mental-arithmetic strategy for a
// multiplication a × b, derives the worked steps and certifies them.
package method

import "fmt"

// Strategy identifies one calculation technique from the catalog.
type Strategy int

// Catalog members in priority order. Lower values win final tie-breaks.
const (
	SquareEndingInFive Strategy = iota + 1
	SameTensUnitsSumTen
	MultiplyBy111
	NearHundred
	Squaring
	DifferenceOfSquares
	NearEqualSquares
	NearPowerOfTen
	Factorization
	PlaceValue
)

var strategyNames = map[Strategy]string{
	SquareEndingInFive:  "square-ending-in-5",
	SameTensUnitsSumTen: "same-tens-units-sum-to-ten",
	MultiplyBy111:       "multiply-by-111",
	NearHundred:         "near-100",
	Squaring:            "squaring",
	DifferenceOfSquares: "difference-of-squares",
	NearEqualSquares:    "near-equal-squares",
	NearPowerOfTen:      "near-power-of-ten",
	Factorization:       "factorization",
	PlaceValue:          "place-value",
}

var displayNames = map[Strategy]string{
	SquareEndingInFive:  "Squaring Numbers Ending in 5",
	SameTensUnitsSumTen: "Same Tens, Units Sum to Ten",
	MultiplyBy111:       "Multiplying by 111",
	NearHundred:         "Near 100 on Both Sides",
	Squaring:            "Squaring by Expansion",
	DifferenceOfSquares: "Difference of Squares",
	NearEqualSquares:    "Near-Equal Squares",
	NearPowerOfTen:      "Near a Power of Ten",
	Factorization:       "Factorization",
	PlaceValue:          "Place-Value Split",
}

var descriptions = map[Strategy]string{
	SquareEndingInFive:  "For a number ending in 5, multiply its tens digit by the next whole number and write 25 after the result.",
	SameTensUnitsSumTen: "When both numbers share a tens digit and their units add to 10, multiply the tens digit by its successor for the hundreds and append the product of the units.",
	MultiplyBy111:       "Multiplying by 111 is multiplying by 100, by 10 and by 1, then adding the three results.",
	NearHundred:         "Write both numbers as 100 plus or minus a small deviation, then adjust 10000 by the deviations.",
	Squaring:            "Split the number at the nearest multiple of ten and expand (x + y)² = x² + 2xy + y².",
	DifferenceOfSquares: "Two numbers the same distance either side of a midpoint multiply to the midpoint squared minus the distance squared.",
	NearEqualSquares:    "When two numbers differ by one or two, square the rounder one and add or subtract a copy of it.",
	NearPowerOfTen:      "Treat a number close to 10, 100 or 1000 as that power of ten plus or minus a small correction.",
	Factorization:       "Break one number into factors so that an early product lands on a round number.",
	PlaceValue:          "Split one number into hundreds, tens and ones, multiply each part and add. It works for every problem.",
}

// Catalog returns every strategy in priority order.
func Catalog() []Strategy {
	return []Strategy{
		SquareEndingInFive,
		SameTensUnitsSumTen,
		MultiplyBy111,
		NearHundred,
		Squaring,
		DifferenceOfSquares,
		NearEqualSquares,
		NearPowerOfTen,
		Factorization,
		PlaceValue,
	}
}

// String returns the stable, serializable name.
func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// DisplayName returns a human-readable name.
func (s Strategy) DisplayName() string {
	if n, ok := displayNames[s]; ok {
		return n
	}
	return s.String()
}

// Description returns a one-sentence, problem-independent summary of the technique.
func (s Strategy) Description() string {
	return descriptions[s]
}

// Priority is the 1-based catalog position used as the final tie-break.
func (s Strategy) Priority() int {
	return int(s)
}

// Valid reports whether s is a catalog member.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy maps a stable name back to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler so JSON carries the stable name.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
