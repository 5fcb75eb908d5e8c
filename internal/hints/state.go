package hints

// State tracks how far a learner has progressed through a Result. It is a
// value: Reveal returns a new State and leaves its input untouched.
type State struct {
	CurrentLevel  Level  `json:"current_level"`
	RevealedHints []Hint `json:"revealed_hints"`
	HasMoreHints  bool   `json:"has_more_hints"`
	TotalHints    int    `json:"total_hints"`
}

// NewState returns the initial state for r, with nothing revealed.
func NewState(r *Result) State {
	return State{
		CurrentLevel:  LevelNone,
		RevealedHints: []Hint{},
		HasMoreHints:  len(r.Hints) > 0,
		TotalHints:    len(r.Hints),
	}
}

// Reveal advances exactly one level. At the terminal level it returns s unchanged.
func Reveal(s State, r *Result) State {
	if !s.HasMoreHints || len(s.RevealedHints) >= len(r.Hints) {
		return s
	}
	next := r.Hints[len(s.RevealedHints)]

	revealed := make([]Hint, len(s.RevealedHints), len(s.RevealedHints)+1)
	copy(revealed, s.RevealedHints)
	revealed = append(revealed, next)

	return State{
		CurrentLevel:  next.Level,
		RevealedHints: revealed,
		HasMoreHints:  len(revealed) < len(r.Hints),
		TotalHints:    len(r.Hints),
	}
}

// Current returns the most recently revealed hint.
func (s State) Current() (Hint, bool) {
	if len(s.RevealedHints) == 0 {
		return Hint{}, false
	}
	return s.RevealedHints[len(s.RevealedHints)-1], true
}

// Revealed returns how many hints have been shown.
func (s State) Revealed() int {
	return len(s.RevealedHints)
}
