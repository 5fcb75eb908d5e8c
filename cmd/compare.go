package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

var compareCmd = &cobra.Command{
	Use:   "compare A B",
	Short: "Compare every applicable method for A × B",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b, err := parseOperands(args)
		if err != nil {
			return err
		}
		engine := cfg.Engine
		engine.MaxAlternatives = len(method.Catalog())
		r, err := method.NewSelector(engine, method.WithLogger(logger)).Select(a, b)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s = %d\n\n", problemgen.Problem{A: a, B: b}, r.Optimal.Solution.Answer())
		fmt.Fprintln(out, comparisonTable(r))
		fmt.Fprintln(out)
		fmt.Fprintln(out, r.ComparisonSummary)
		return nil
	},
}

func comparisonTable(r *method.Ranking) string {
	rows := [][]string{{
		"1",
		r.Optimal.Strategy.DisplayName(),
		strconv.FormatFloat(r.Optimal.CostScore, 'f', 1, 64),
		strconv.FormatFloat(r.Optimal.QualityScore, 'f', 2, 64),
		strconv.Itoa(len(r.Optimal.Solution.Steps)),
		"optimal",
	}}
	for i, alt := range r.Alternatives {
		rows = append(rows, []string{
			strconv.Itoa(i + 2),
			alt.Strategy.DisplayName(),
			strconv.FormatFloat(alt.CostScore, 'f', 1, 64),
			strconv.FormatFloat(alt.QualityScore, 'f', 2, 64),
			strconv.Itoa(len(alt.Steps)),
			alt.WhyNotOptimal,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Method", "Cost", "Quality", "Steps", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(theme.Primary)
			case row == 0:
				return style.Foreground(theme.Success)
			}
			return style
		}).
		String()
}
