package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newEditCmd creates the edit command: the interactive tree editor.
func newEditCmd(configPath *string) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the mind map interactively",
		Long: `Edit the mind map interactively.

The editor loads the persisted document from the configured store (an
empty map when none exists), and autosaves edits after a quiet window.
Press tab to cycle through the presentation engines (editable tree,
outline, document preview).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			st, cleanup, err := openStore(cmd.Context(), cfg, title)
			if err != nil {
				return err
			}
			defer cleanup()

			p := tea.NewProgram(NewEditorModel(st), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "document title for a newly created map")
	return cmd
}
