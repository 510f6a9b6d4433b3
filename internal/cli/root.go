package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the mediate-demo CLI.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mediate-demo",
		Short: "Exercise an in-process mediator against a small demo domain",
		Long: `mediate-demo wires a mediator with request handlers, pipeline behaviors,
notification handlers and error handlers, then sends requests through it.

Examples:
  mediate-demo run --name Ada
  mediate-demo run --config ./configs/mediate.yaml
  MEDIATE_METRICS_ENABLED=true mediate-demo run
  mediate-demo kinds`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./mediate.yaml when present)")

	rootCmd.AddCommand(NewRunCommand(&configPath))
	rootCmd.AddCommand(NewKindsCommand())

	return rootCmd
}
