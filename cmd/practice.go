package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/app"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/session"
)

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().String("difficulty", "", "Operand range: easy, medium, hard or expert")
	cmd.Flags().String("focus", "", "Only serve problems best solved by this strategy")
	cmd.Flags().Int("problems", -1, "Problems per session (0 = until you quit)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible problem sets")
	cmd.Flags().Bool("negative", false, "Include negative operands")
}

// practiceConfig overlays the practice flags that were set on the config.
func practiceConfig(cmd *cobra.Command) (problemgen.Config, int, error) {
	gen := cfg.Practice.Generator
	problems := cfg.Practice.Problems

	if cmd.Flags().Changed("difficulty") {
		v, _ := cmd.Flags().GetString("difficulty")
		d, err := problemgen.ParseDifficulty(v)
		if err != nil {
			return gen, 0, err
		}
		gen.Difficulty = d
	}
	if cmd.Flags().Changed("focus") {
		gen.Focus, _ = cmd.Flags().GetString("focus")
	}
	if cmd.Flags().Changed("seed") {
		gen.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("negative") {
		gen.AllowNegative, _ = cmd.Flags().GetBool("negative")
	}
	if cmd.Flags().Changed("problems") {
		problems, _ = cmd.Flags().GetInt("problems")
		if problems < 0 {
			return gen, 0, fmt.Errorf("--problems must not be negative")
		}
	}
	return gen, problems, nil
}

// runPractice opens the store, builds dependencies, and launches the TUI.
func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gen, problems, err := practiceConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	selector := method.NewSelector(cfg.Engine, method.WithLogger(logger))
	generator, err := problemgen.New(gen, selector)
	if err != nil {
		return fmt.Errorf("problem generator: %w", err)
	}

	opts := session.Options{
		Generator:   generator,
		Selector:    selector,
		Hints:       cfg.Hints,
		Difficulty:  string(gen.Difficulty),
		MaxProblems: problems,
		EventRepo:   eventRepo,
		Logger:      logger,
	}

	cfg.LLM.Discover()
	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, logger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		logger.Debug("coach disabled, no LLM provider configured")
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The coach will be unavailable.")
	default:
		svc := coach.NewService(provider, cfg.Coach, logger)
		defer svc.Close()
		opts.Coach = svc
		logger.Info("coach enabled", zap.String("model", provider.ModelID()))
	}

	return app.Run(ctx, opts)
}
