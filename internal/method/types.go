package method

// Step is one line of a derivation. When SubSteps is non-empty the step
// claims Result equals the sum of the sub-step results, so sub-steps
// carry signed contributions (a subtracted term has a negative Result).
type Step struct {
	Expression  string `json:"expression"`
	Result      int64  `json:"result"`
	Explanation string `json:"explanation"`
	Depth       int    `json:"depth"`
	SubSteps    []Step `json:"sub_steps,omitempty"`
}

// Solution is a derivation of a × b produced by one strategy.
type Solution struct {
	Strategy         Strategy      `json:"strategy"`
	Rationale        string        `json:"rationale"`
	Steps            []Step        `json:"steps"`
	Alternatives     []Alternative `json:"alternatives,omitempty"`
	Validated        bool          `json:"validated"`
	ValidationErrors []string      `json:"validation_errors"`
}

// Answer returns the value the derivation arrives at.
func (s *Solution) Answer() int64 {
	if s == nil || len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].Result
}

// Alternative is a runner-up strategy with a validated derivation.
type Alternative struct {
	Strategy      Strategy `json:"strategy"`
	CostScore     float64  `json:"cost_score"`
	QualityScore  float64  `json:"quality_score"`
	Steps         []Step   `json:"steps"`
	WhyNotOptimal string   `json:"why_not_optimal"`
}

// Choice is the winning strategy of a ranking.
type Choice struct {
	Strategy     Strategy  `json:"strategy"`
	Solution     *Solution `json:"solution"`
	CostScore    float64   `json:"cost_score"`
	QualityScore float64   `json:"quality_score"`
}

// Ranking is the complete answer the selector gives for a × b.
type Ranking struct {
	A                 int64         `json:"a"`
	B                 int64         `json:"b"`
	Optimal           Choice        `json:"optimal"`
	Alternatives      []Alternative `json:"alternatives"`
	ComparisonSummary string        `json:"comparison_summary"`
}

// Candidate is an applicable strategy scored for a pair, before derivation.
type Candidate struct {
	Strategy Strategy `json:"strategy"`
	Cost     float64  `json:"cost"`
	Quality  float64  `json:"quality"`
}

// ValidationResult reports whether a derivation certifies a × b.
// Only Errors make a derivation invalid; Warnings are cosmetic.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// countSteps counts every step including nested sub-steps.
func countSteps(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += 1 + countSteps(s.SubSteps)
	}
	return n
}
