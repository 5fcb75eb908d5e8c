package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
)

var studyCmd = &cobra.Command{
	Use:   "study [strategy...]",
	Short: "Read a guide to the calculation methods with worked examples",
	Long: `Prints a guide to every calculation method (or only the named ones),
each with a worked example the engine picks that method for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategies := method.Catalog()
		if len(args) > 0 {
			strategies = nil
			for _, name := range args {
				s, err := method.ParseStrategy(name)
				if err != nil {
					return err
				}
				strategies = append(strategies, s)
			}
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		md, err := studyGuide(cmd.Context(), newSelector(), strategies, seed)
		if err != nil {
			return err
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		width, _ := cmd.Flags().GetInt("width")
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render guide: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	studyCmd.Flags().Bool("raw", false, "Print the markdown source")
	studyCmd.Flags().Int("width", 80, "Wrap width")
	studyCmd.Flags().Uint64("seed", 1, "Seed for picking examples")
}

// studyGuide writes a markdown section per strategy with an example the
// selector rates optimal for it.
func studyGuide(ctx context.Context, sel *method.Selector, strategies []method.Strategy, seed uint64) (string, error) {
	var b strings.Builder
	b.WriteString("# Mental multiplication methods\n\n")
	b.WriteString("For each product the trainer picks the method with the fewest, easiest steps. ")
	b.WriteString("Ties go to the method with rounder intermediate numbers, then to the order below.\n\n")

	for _, s := range strategies {
		gen, err := problemgen.New(problemgen.Config{Focus: s.String(), Seed: seed}, sel)
		if err != nil {
			return "", err
		}
		p, err := gen.Generate(ctx)
		if err != nil {
			return "", fmt.Errorf("example for %s: %w", s, err)
		}
		r, err := sel.Select(p.A, p.B)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "## %d. %s\n\n", s.Priority(), s.DisplayName())
		fmt.Fprintf(&b, "%s\n\n", s.Description())
		fmt.Fprintf(&b, "**Example: %s = %d**\n\n", p, r.Optimal.Solution.Answer())
		if r.Optimal.Solution.Rationale != "" {
			fmt.Fprintf(&b, "_%s_\n\n", r.Optimal.Solution.Rationale)
		}
		writeMarkdownSteps(&b, r.Optimal.Solution.Steps, 0)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeMarkdownSteps(b *strings.Builder, steps []method.Step, indent int) {
	pad := strings.Repeat("   ", indent)
	for i, s := range steps {
		fmt.Fprintf(b, "%s%d. `%s`", pad, i+1, s.Expression)
		if s.Explanation != "" {
			fmt.Fprintf(b, " (%s)", s.Explanation)
		}
		b.WriteString("\n")
		writeMarkdownSteps(b, s.SubSteps, indent+1)
	}
}
