// Package cli provides the command-line interface for statusboard.
package cli

import (
	"context"
	"fmt"

	service "github.com/okian/statusboard/internal/app"
	"github.com/okian/statusboard/internal/config"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries global flags and the configuration resolved from them.
type app struct {
	configFile string
	dataDir    string
	logLevel   string
	logFile    string

	cfg *config.Config
}

// NewRootCommand builds the statusboard command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "statusboard",
		Short: "Browse model status ratings",
		Long: `Statusboard loads a directory of <model>_<temperature>.json rating files
and answers filtering, sorting and statistics questions about them, either
from the command line or over a read-only HTTP API.

Configuration is layered: defaults, then the YAML file named by --config or
STATUSBOARD_CONFIG, then STATUSBOARD_* environment variables, then flags.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "directory of data files (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")

	root.AddCommand(
		newServeCommand(a),
		newSummaryCommand(a),
		newItemsCommand(a),
		newFacetsCommand(a),
		newDiagnosticsCommand(a),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// setup resolves configuration and initializes logging before any command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var opts []config.LoadOption
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	cfg, err := config.Load(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(cfg.LogLevel),
	}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile))
	}
	if err := logger.Init(logOpts...); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	a.cfg = cfg
	return nil
}

// newService builds a service from the resolved configuration.
func (a *app) newService(watch bool, extra ...service.Option) (*service.Service, error) {
	opts := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithDataDir(a.cfg.DataDir),
		service.WithLoadConcurrency(a.cfg.LoadConcurrency),
		service.WithRatingPolicy(a.cfg.Policy()),
		service.WithWatch(watch, a.cfg.WatchDebounce),
		service.WithModelNames(a.cfg.ModelNames),
	}
	return service.New(append(opts, extra...)...)
}

// loadOnce starts a service without watching, returns it loaded, and
// leaves stopping it to the caller.
func (a *app) loadOnce(ctx context.Context) (*service.Service, error) {
	svc, err := a.newService(false, service.WithSystemMetricsInterval(0))
	if err != nil {
		return nil, err
	}
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
