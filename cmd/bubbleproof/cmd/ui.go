package cmd

import (
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/bubbleproof/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui [page.json]",
	Short: "Launch the interactive editor",
	Long: `Launch the desktop editor with the original and translated panes. Without
a page argument the last opened page is restored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var page string
		if len(args) == 1 {
			page = args[0]
		}
		state := appui.NewState()
		state.SetAppVersion(rootCmd.Version)
		return appui.Run(state, page)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
