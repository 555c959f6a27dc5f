package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bubbleproof",
	Short: "Bubbleproof - speech bubble proofreading tools",
	Long: `Bubbleproof edits the speech bubbles detected on comic pages. It shows the
original and translated page side by side and lets you move, resize, rotate
and draw bubbles in either pane.

Examples:
  bubbleproof ui p001.json                       # Launch the editor
  bubbleproof replay p001.json gestures.txt      # Replay a gesture script
  bubbleproof render p001.json p001-overlay.png  # Snapshot the overlay
  bubbleproof info p001.json                     # Show page contents`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		interaction.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
