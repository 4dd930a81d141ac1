package main

import (
	"context"
	"datebench/internal/config"
	"datebench/internal/dates"
	"datebench/internal/harness"
	"datebench/internal/logging"
	"datebench/internal/report"
	"datebench/internal/store"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs one analysis for the date given as its only argument.
var rootCmd = &cobra.Command{
	Use:   "datebench <yyyy-MM-dd>",
	Short: "Compare search, min/max and sort across date containers",
	Long: `datebench loads a list of calendar dates once and runs the same
search, min/max and sort operations against a list, a priority queue and a
hash set, printing the result and elapsed time of every operation.

Each container writes its sorted copy of the dates back through the
configured storage backend.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runAnalysis,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initRuntime loads configuration and installs the logger.
func initRuntime(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	level := loaded.Logging.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.New(level, loaded.Logging.Format)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	logging.Initialize(logger)
	logging.Get(logging.CategoryBoot).Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("source", cfg.SourceName()))
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when the
// command ran without PersistentPreRunE.
func currentConfig() *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg
}

// runAnalysis validates the search date and hands off to the coordinator.
// Bad input is reported on stdout and is not an error.
func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	printer := report.NewPrinter(cmd.OutOrStdout(), cfg.UI.Color)

	if len(args) != 1 {
		printer.Usage()
		return nil
	}
	target, err := dates.Parse(args[0])
	if err != nil {
		logging.Get(logging.CategoryBoot).Debug("rejected search date", zap.String("arg", args[0]), zap.Error(err))
		printer.FormatError()
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gw, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer gw.Close()

	coordinator := harness.New(gw, printer, cfg.SourceName(), cfg.SortedName())
	if _, err := coordinator.Run(ctx, target); err != nil {
		// Already reported on the console.
		logging.Get(logging.CategoryBoot).Debug("run aborted", zap.Error(err))
	}
	return nil
}
