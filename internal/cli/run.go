package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/next-trace/scg-mediator/adapters/inmemory"
	mprom "github.com/next-trace/scg-mediator/adapters/prometheus"
	"github.com/next-trace/scg-mediator/internal/config"
	"github.com/next-trace/scg-mediator/mediator"
)

// NewRunCommand creates the run command.
func NewRunCommand(configPath *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Dispatch and publish the demo messages",
		Long: `Build a mediator from configuration, register the demo handlers, then
greet, create a valid and an invalid user, and announce the new user.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.Flags().Changed("name") {
				cfg.Demo.Name = name
			}

			logger := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
			rec := inmemory.New()
			opts := rec.Options()

			var reg *prometheus.Registry
			if cfg.Metrics.Enabled {
				reg = prometheus.NewRegistry()

				col := mprom.New(cfg.Metrics.Namespace)
				if err := col.Register(reg); err != nil {
					return fmt.Errorf("register metrics: %w", err)
				}

				opts = append(opts, col.Options()...)
			}

			m := mediator.New(logger, opts...)
			if err := registerDemo(m, logger); err != nil {
				return fmt.Errorf("register demo: %w", err)
			}

			out := cmd.OutOrStdout()

			if err := runDemo(cmd.Context(), m, cfg.Demo.Name, out); err != nil {
				return err
			}

			printSummary(out, rec)

			if reg != nil {
				return printMetrics(out, reg)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to greet and register (overrides demo.name)")

	return cmd
}

func runDemo(ctx context.Context, m *mediator.Mediator, name string, out io.Writer) error {
	greeting, err := mediator.Ask[string](ctx, m, Greet{Name: name})
	if err != nil {
		return fmt.Errorf("greet: %w", err)
	}

	fmt.Fprintf(out, "greet:         %s\n", greeting)

	user, err := mediator.Ask[User](ctx, m, CreateUser{Name: name})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(out, "create user:   %s (%s)\n", user.Name, user.ID)

	rejected, err := m.Dispatch(ctx, CreateUser{})
	if err != nil {
		return fmt.Errorf("create invalid user: %w", err)
	}

	fmt.Fprintf(out, "invalid user:  %v\n", rejected)

	if err := m.Publish(ctx, UserCreated{User: user}); err != nil {
		return fmt.Errorf("publish user created: %w", err)
	}

	fmt.Fprintf(out, "published:     %s\n", UserCreatedKind)

	return nil
}

func printSummary(out io.Writer, rec *inmemory.Recorder) {
	handled := 0

	failures := rec.Failures()
	for _, f := range failures {
		if f.Handled {
			handled++
		}
	}

	fmt.Fprintf(out, "dispatches=%d publishes=%d failures=%d handled=%d\n",
		len(rec.Dispatches()), len(rec.Publishes()), len(failures), handled)
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}

			value := metric.GetCounter().GetValue()
			if h := metric.GetHistogram(); h != nil {
				value = float64(h.GetSampleCount())
			}

			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), value))
		}
	}

	slices.Sort(lines)

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	return nil
}
