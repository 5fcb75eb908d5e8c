package cmd

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"sync"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/components"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Rank every pair in a range and report which methods win",
	Long: `Ranks every product a × b with from ≤ a ≤ b ≤ to and prints how often
each method is optimal. Every derivation is validated on the way, so a clean
survey also checks the engine over the whole range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetInt64("from")
		to, _ := cmd.Flags().GetInt64("to")
		workers, _ := cmd.Flags().GetInt("workers")

		res, err := survey(cmd.Context(), newSelector(), from, to, workers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d products from %d to %d\n\n", res.Total, from, to)
		fmt.Fprintln(out, res.table())
		return nil
	},
}

func init() {
	surveyCmd.Flags().Int64("from", 11, "Smallest operand")
	surveyCmd.Flags().Int64("to", 99, "Largest operand")
	surveyCmd.Flags().Int("workers", runtime.NumCPU(), "Concurrent rankers")
}

// surveyResult counts how often each strategy was optimal.
type surveyResult struct {
	Total  int
	Counts map[method.Strategy]int
}

// survey ranks every pair from ≤ a ≤ b ≤ to, one row of a per task.
func survey(ctx context.Context, sel *method.Selector, from, to int64, workers int) (*surveyResult, error) {
	if from > to {
		return nil, fmt.Errorf("--from %d is greater than --to %d", from, to)
	}
	if max(-from, to) > method.MaxOperand {
		return nil, fmt.Errorf("operands must be within ±%d", method.MaxOperand)
	}

	res := &surveyResult{Counts: make(map[method.Strategy]int)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for a := from; a <= to; a++ {
		g.Go(func() error {
			local := make(map[method.Strategy]int)
			for b := a; b <= to; b++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := sel.Select(a, b)
				if err != nil {
					return fmt.Errorf("%d × %d: %w", a, b, err)
				}
				local[r.Optimal.Strategy]++
			}

			mu.Lock()
			defer mu.Unlock()
			for s, n := range local {
				res.Counts[s] += n
				res.Total += n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("survey complete", zap.Int64("from", from), zap.Int64("to", to), zap.Int("total", res.Total))
	return res, nil
}

func (r *surveyResult) table() string {
	strategies := method.Catalog()
	slices.SortStableFunc(strategies, func(x, y method.Strategy) int {
		return r.Counts[y] - r.Counts[x]
	})

	var rows [][]string
	for _, s := range strategies {
		n := r.Counts[s]
		if n == 0 {
			continue
		}
		share := float64(n) / float64(r.Total)
		bar := components.ProgressBar{Percent: share, Width: 24}
		rows = append(rows, []string{
			s.DisplayName(),
			strconv.Itoa(n),
			strconv.FormatFloat(share*100, 'f', 1, 64) + "%",
			bar.View(),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Method", "Optimal", "Share", "").
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
