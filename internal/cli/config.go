package cli

import (
	"fmt"

	"rtop/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(root *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect rtop configuration",
	}

	configCmd.AddCommand(newConfigShowCommand(root))
	configCmd.AddCommand(newConfigValidateCommand(root))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigShowCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Source != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.Source)
			} else {
				fmt.Fprintln(out, "# built-in defaults")
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigValidateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and report the first problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := root.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, w := range loader.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			source := cfg.Source
			if source == "" {
				source = "built-in defaults"
			}
			fmt.Fprintf(out, "configuration is valid (%s)\n", source)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "List the config file search paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.GetConfigPaths() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}
