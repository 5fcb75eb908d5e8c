package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/render"
)

var hintsCmd = &cobra.Command{
	Use:   "hints A B",
	Short: "Print the progressive hints for A × B",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parseOperands(args)
		if err != nil {
			return err
		}
		reveal, _ := cmd.Flags().GetInt("reveal")

		r, err := newSelector().Select(a, b)
		if err != nil {
			return err
		}
		res := hints.Generate(r, a, b, cfg.Hints)
		state := hints.NewState(res)
		for reveal != 0 && state.HasMoreHints {
			state = hints.Reveal(state, res)
			reveal--
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, state)
		}

		fmt.Fprintf(out, "%s\n\n", problemgen.Problem{A: a, B: b})
		for i, h := range state.RevealedHints {
			fmt.Fprintf(out, "Hint %d/%d · %s\n", i+1, state.TotalHints, render.Hint(h))
			fmt.Fprintln(out)
		}
		if state.HasMoreHints {
			fmt.Fprintf(out, "%d more hints hidden.\n", state.TotalHints-state.Revealed())
		}
		return nil
	},
}

func init() {
	hintsCmd.Flags().Int("reveal", -1, "Number of hints to reveal (-1 = all)")
	hintsCmd.Flags().Bool("json", false, "Print the hint state as JSON")
}
