package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/phase"
	"github.com/mindweave/mindweave/pkg/phase/outline"
)

// newOutlineCmd creates the outline command: print the mind map as an
// indented list.
func newOutlineCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "outline [document.json]",
		Short: "Print the mind map as an indented outline",
		Long: `Print the mind map as an indented outline.

Without an argument the persisted document from the configured store is
used; with a path the given document file is read instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, selected, err := resolveDocument(cmd.Context(), *configPath, args)
			if err != nil {
				return err
			}
			if len(doc.Nodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("(empty mind map)"))
				return nil
			}

			blueprints := graph.NewBlueprints()
			surface := phase.NewTextSurface()
			eng := outline.New(blueprints.Priority)
			eng.Render(surface, doc)

			fmt.Fprint(cmd.OutOrStdout(), outline.View(surface, selected))
			return nil
		},
	}
}

// resolveDocument loads the document to operate on: from an explicit
// file when given, otherwise from the configured persistence backend.
// The second return value is the selected node id, when known.
func resolveDocument(ctx context.Context, configPath string, args []string) (graph.Document, string, error) {
	if len(args) == 1 {
		doc, err := graph.ReadDocumentFile(args[0])
		if err != nil {
			return graph.Document{}, "", err
		}
		return doc, doc.Selected, nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return graph.Document{}, "", err
	}
	st, cleanup, err := openStore(ctx, cfg, "")
	if err != nil {
		return graph.Document{}, "", err
	}
	defer cleanup()
	doc := st.Document()
	return doc, doc.Selected, nil
}
