package cli

import (
	"context"
	"fmt"
	"time"

	"rtop/internal/logging"
	"rtop/internal/output"
	"rtop/ui/console"

	"github.com/spf13/cobra"
)

func newSnapshotCommand(root *rootOptions) *cobra.Command {
	var (
		samples int
		top     int
		width   int
		rows    int
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print a one-off report and exit",
		Long: `Collect a few samples, then print CPU and memory charts, the busiest
processes and the threshold report to stdout.`,
		Example: `  # Default report
  rtop snapshot

  # Ten samples one second apart, top 5 processes
  rtop snapshot --samples 10 --interval 1s --top 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}
			logger := logging.Discard()
			if root.debug {
				logger = logging.New(cmd.ErrOrStderr(), true)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			col, err := connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer col.Close(context.Background())

			interval := cfg.FastInterval
			payload, err := output.RunPipeline(ctx, col, output.PipelineOptions{
				Samples:  samples,
				Interval: interval,
				Engine:   cfg.Engine(),
			})
			if err != nil {
				return err
			}
			logger.Debug("snapshot collected", "samples", payload.CPUHistory.Len(), "interval", interval)

			out := cmd.OutOrStdout()
			console.PrintChart(out, fmt.Sprintf("CPU Usage (%d samples, %s apart)", payload.CPUHistory.Len(), interval.Round(time.Millisecond)),
				payload.CPUHistory.Values(), width, rows)
			console.PrintChart(out, "Memory Usage", payload.MemoryHistory.Values(), width, rows)
			if top > 0 {
				if err := console.PrintProcesses(out, payload.Stats, top+1, width); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)
			console.Print(out, output.BuildDashboard(payload.Results, payload.Stats))
			return nil
		},
	}

	cmd.Flags().IntVarP(&samples, "samples", "n", 3, "number of fast samples to take")
	cmd.Flags().IntVar(&top, "top", 10, "number of processes to list (0 to skip)")
	cmd.Flags().IntVar(&width, "width", 60, "report width in columns")
	cmd.Flags().IntVar(&rows, "rows", 6, "chart height in rows")
	return cmd
}
