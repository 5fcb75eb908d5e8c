package coach

import (
	"fmt"
	"strings"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
)

const systemPrompt = `You are a patient mental math coach.
You are given a multiplication problem and a derivation that has already been checked.
Retell the derivation so a learner can follow it in their head.

Rules:
- Follow the given steps in order. Do not invent a different method.
- Only use numbers that appear in the derivation.
- Keep each step to one short sentence.
- final_answer must be the product the derivation reaches.`

func buildUserMessage(in Input) string {
	var b strings.Builder
	sol := in.Solution
	fmt.Fprintf(&b, "Problem: %d × %d\n", in.A, in.B)
	fmt.Fprintf(&b, "Method: %s (%s)\n", sol.Strategy.DisplayName(), sol.Strategy.Description())
	fmt.Fprintf(&b, "Why: %s\n\nDerivation:\n", sol.Rationale)
	writeSteps(&b, sol.Steps)
	return b.String()
}

func writeSteps(b *strings.Builder, steps []method.Step) {
	for _, s := range steps {
		indent := strings.Repeat("  ", s.Depth)
		fmt.Fprintf(b, "%s- %s  [%d] %s\n", indent, s.Expression, s.Result, s.Explanation)
		writeSteps(b, s.SubSteps)
	}
}

// feedbackMessage asks for a corrected walkthrough after a failed check.
func feedbackMessage(verr *ValidationError) string {
	return fmt.Sprintf("Your walkthrough was rejected: %s. Please answer again following the rules.", verr.Message)
}
