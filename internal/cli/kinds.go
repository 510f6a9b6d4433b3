package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/mediator"
)

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Print the demo kind tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.DiscardHandler)

			m := mediator.New(logger)
			if err := registerDemo(m, logger); err != nil {
				return fmt.Errorf("register demo: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, root := range cmed.Roots() {
				printTree(out, m.Graph(), root, 0)
			}

			return nil
		},
	}
}

func printTree(out io.Writer, g *kind.Graph, k kind.Kind, depth int) {
	fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), k)

	children := g.Children(k)
	slices.Sort(children)

	for _, child := range children {
		printTree(out, g, child, depth+1)
	}
}
