package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"rtop/internal/collector"
	"rtop/internal/config"
	"rtop/internal/logging"
	"rtop/ui/tui"
	"rtop/ui/tui/components"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags.
type rootOptions struct {
	cfgFile  string
	debug    bool
	interval time.Duration
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "rtop",
		Short: "Terminal system monitor",
		Long: `rtop is a terminal dashboard showing CPU and memory history as braille
charts, a sortable process list, load average and host details.

Pages and thresholds come from a YAML config file; edits to the file are
applied while rtop is running.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().DurationVar(&opts.interval, "interval", 0, "override the fast poll interval (e.g. 500ms)")

	// Add subcommands
	rootCmd.AddCommand(newSnapshotCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newWidgetsCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadConfig resolves the effective config: file, env, then flags.
func (o *rootOptions) loadConfig() (*config.Config, *config.Loader, error) {
	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if o.interval > 0 {
		cfg.FastInterval = o.interval
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := components.Validate(cfg.Pages); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

func runDashboard(ctx context.Context, opts *rootOptions) error {
	cfg, loader, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, opts.debug)
	if err != nil {
		return err
	}
	defer closer.Close()
	for _, w := range loader.Warnings() {
		logger.Warn(w)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	col, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer col.Close(context.Background())

	logger.Info("starting dashboard", "config", cfg.Source, "fast", cfg.FastInterval, "slow", cfg.SlowInterval)
	if err := tui.Start(ctx, col, cfg, loader, logger); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func connect(ctx context.Context, cfg *config.Config, logger *log.Logger) (*collector.SystemCollector, error) {
	colCfg := cfg.Collector()
	if err := colCfg.Validate(); err != nil {
		return nil, err
	}
	col := collector.NewSystemCollector(colCfg)
	if err := col.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect sensors: %w", err)
	}
	logger.Debug("sensors connected", "process_limit", colCfg.ProcessLimit)
	return col, nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rtop %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newWidgetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "widgets",
		Short: "List the widgets available to pages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range components.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
