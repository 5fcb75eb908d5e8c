package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/config"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/store"
)

var (
	cfg     config.Config
	logger  = zap.NewNop()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mentalmath",
	Short: "Mental multiplication trainer",
	Long: `mentalmath teaches mental multiplication shortcuts.

For any product it picks the cheapest of ten calculation methods, shows a
verified step-by-step derivation and explains why the other methods lose.
Run without arguments to start a practice session.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runPractice,
}

// persistentPreRun loads config and builds the logger before any command.
// It is attached in init because it refers to rootCmd.
func persistentPreRun(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}

	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	// The practice UI owns the terminal, so its logs go to a file.
	if cmd == rootCmd {
		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		logPath := filepath.Join(filepath.Dir(dbPath), "mentalmath.log")
		zcfg.OutputPaths = []string{logPath}
		zcfg.ErrorOutputPaths = []string{logPath}
	}
	logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentPreRunE = persistentPreRun

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MENTALMATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mentalmath/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(hintsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MENTALMATH_DB env var, then the config file, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return st, nil
}
