package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindweave/mindweave/pkg/export"
	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/phase/document"
)

// newExportCmd creates the export command: render the mind map to HTML,
// DOT or PNG.
func newExportCmd(configPath *string) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [document.json]",
		Short: "Export the mind map to html, dot or png",
		Long: `Export the mind map to an external format.

Formats:
  html  generated document page (default)
  dot   Graphviz DOT text
  png   rasterized graph via Graphviz

Without an argument the persisted document from the configured store is
exported; with a path the given document file is read instead. Output
goes to stdout unless -o names a file (png always requires -o).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, _, err := resolveDocument(cmd.Context(), *configPath, args)
			if err != nil {
				return err
			}
			blueprints := graph.NewBlueprints()
			prog := newProgress(logger)

			switch strings.ToLower(format) {
			case "", "html":
				page, err := document.Generate(doc, blueprints.Priority)
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, output, page); err != nil {
					return err
				}
			case "dot":
				if err := writeOutput(cmd, output, export.DOT(doc, blueprints.Priority)); err != nil {
					return err
				}
			case "png":
				if output == "" {
					return fmt.Errorf("png export requires --output")
				}
				dot := export.DOT(doc, blueprints.Priority)
				if err := export.RenderPNG(cmd.Context(), dot, output); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want html, dot or png)", format)
			}

			if output != "" {
				prog.done(fmt.Sprintf("Exported %d nodes to %s", len(doc.Nodes), output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, dot, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	return cmd
}

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
