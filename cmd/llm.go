package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the coach's LLM provider and request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().RecentLLMRequests(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 112))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmCheckCmd = &cobra.Command{
	Use:   "check [A B]",
	Short: "Ask the configured provider for one walkthrough (default 47 × 53)",
	Args:  cobra.MatchAll(cobra.RangeArgs(0, 2), func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("give both operands or none")
		}
		return nil
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, b := int64(47), int64(53)
		if len(args) == 2 {
			var err error
			if a, b, err = parseOperands(args); err != nil {
				return err
			}
		}
		ctx := cmd.Context()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		cfg.LLM.Discover()
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			return err
		}
		r, err := newSelector().Select(a, b)
		if err != nil {
			return err
		}

		svc := coach.NewService(provider, cfg.Coach, logger)
		defer svc.Close()
		w, err := svc.Walkthrough(ctx, coach.InputFromRanking(r))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s answered by %s\n\n", r.Optimal.Strategy.DisplayName(), w.Model)
		fmt.Fprintln(out, w.Intro)
		for i, s := range w.Steps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, s)
		}
		if w.Tip != "" {
			fmt.Fprintf(out, "\nTip: %s\n", w.Tip)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose, e.g. walkthrough")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmCheckCmd)
}
