package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per method",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		repo := st.EventRepo()
		ctx := cmd.Context()

		stats, err := repo.StrategyStats(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No practice recorded yet. Run mentalmath to start a session.")
			return nil
		}
		fmt.Fprintln(out, statsTable(stats))

		recent, _ := cmd.Flags().GetInt("recent")
		if recent <= 0 {
			return nil
		}
		strategy, _ := cmd.Flags().GetString("strategy")
		if strategy != "" {
			if _, err := method.ParseStrategy(strategy); err != nil {
				return err
			}
		}
		attempts, err := repo.RecentAttempts(ctx, store.QueryOpts{Limit: recent, Strategy: strategy})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent attempts:")
		for _, a := range attempts {
			fmt.Fprintln(out, attemptLine(a))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 0, "Also list the N most recent attempts")
	statsCmd.Flags().String("strategy", "", "Only list recent attempts for this strategy")
}

func statsTable(stats []store.StrategyStat) string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		name := s.Strategy
		if st, err := method.ParseStrategy(s.Strategy); err == nil {
			name = st.DisplayName()
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(s.Attempts),
			fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			strconv.Itoa(s.Skipped),
			strconv.FormatFloat(s.AvgHints, 'f', 1, 64),
			s.AvgTime.Round(100 * time.Millisecond).String(),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Method", "Attempts", "Accuracy", "Skipped", "Avg hints", "Avg time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(theme.Primary)
			}
			return style
		}).
		String()
}

func attemptLine(a store.Attempt) string {
	mark := "✓"
	switch {
	case a.Skipped:
		mark = "–"
	case !a.Correct:
		mark = "✗"
	}
	answer := a.Answer
	if a.Skipped {
		answer = "skipped"
	}
	return fmt.Sprintf("  %s %-16s %-10s %-22s %s",
		mark,
		a.Timestamp.Local().Format("2006-01-02 15:04"),
		problemgen.Problem{A: a.A, B: a.B}.Text(),
		a.Strategy,
		strings.TrimSpace(answer),
	)
}
