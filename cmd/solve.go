package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/render"
)

var solveCmd = &cobra.Command{
	Use:   "solve A B",
	Short: "Show the optimal method and derivation for A × B",
	Example: `  mentalmath solve 47 53
  mentalmath solve 98 47 --alternatives
  mentalmath solve -- -12 34 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parseOperands(args)
		if err != nil {
			return err
		}
		r, err := newSelector().Select(a, b)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, r)
		}

		fmt.Fprintf(out, "%s = %d\n\n", problemgen.Problem{A: a, B: b}, r.Optimal.Solution.Answer())
		fmt.Fprintln(out, render.Solution(r.Optimal.Solution, false))
		fmt.Fprintln(out)
		fmt.Fprintln(out, r.ComparisonSummary)
		if all, _ := cmd.Flags().GetBool("alternatives"); all && len(r.Alternatives) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, render.Alternatives(r.Alternatives))
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().Bool("json", false, "Print the full ranking as JSON")
	solveCmd.Flags().Bool("alternatives", false, "Also list the runner-up methods")
}

// parseOperands parses two integer operands, accepting the same forms as
// practice answers ("1,000", "−12").
func parseOperands(args []string) (int64, int64, error) {
	a, err := problemgen.ParseAnswer(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("operand %q: %w", args[0], err)
	}
	b, err := problemgen.ParseAnswer(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("operand %q: %w", args[1], err)
	}
	return a, b, nil
}

func newSelector() *method.Selector {
	return method.NewSelector(cfg.Engine, method.WithLogger(logger))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
