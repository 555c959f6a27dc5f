package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/bubbleproof/internal/session"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/script"
)

var (
	replayOut    string
	replayJSON   bool
	replayNoSync bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <page.json> <script>",
	Short: "Replay a gesture script against a page",
	Long: `Replay pointer gestures from a script file against a page and print every
finalized event. Edits are applied to the page; use --out to save it.

Script example:
  fit original 800 600
  down original 200 150
  move 260 210
  up

Examples:
  bubbleproof replay p001.json resize.txt
  bubbleproof replay --json --out p001-edited.json p001.json resize.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "",
		"write the edited page to this file")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false,
		"print events as JSON")
	replayCmd.Flags().BoolVar(&replayNoSync, "no-sync", false,
		"start with viewport sync disabled")
}

func runReplay(cmd *cobra.Command, args []string) error {
	pagePath, scriptPath := args[0], args[1]

	parser, err := script.NewParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	s, err := parser.ParseFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	opts := session.DefaultOptions()
	opts.Sync = !replayNoSync
	rec := &interaction.Recorder{}
	sess, err := session.Open(pagePath, opts, rec)
	if err != nil {
		return err
	}

	if err := script.NewPlayer(sess.Engine).Run(s); err != nil {
		return fmt.Errorf("replay %s: %w", scriptPath, err)
	}

	out := cmd.OutOrStdout()
	if replayJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		events := rec.Events
		if events == nil {
			events = []interaction.Event{}
		}
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
	} else {
		printEvents(out, rec.Events)
	}

	if replayOut != "" {
		if err := sess.Doc.Save(replayOut); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(out, "Saved %d bubbles to %s\n", sess.Doc.Len(), replayOut)
		}
	}
	return nil
}

func printEvents(w io.Writer, events []interaction.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	for _, e := range events {
		switch e.Kind {
		case interaction.EventSelect, interaction.EventMultiSelect:
			fmt.Fprintf(w, "%-12s index=%d\n", e.Kind, e.Index)
		case interaction.EventDragEnd, interaction.EventResizeEnd:
			fmt.Fprintf(w, "%-12s index=%d coords=%s\n", e.Kind, e.Index, formatRect(e.Coords))
		case interaction.EventRotateEnd:
			fmt.Fprintf(w, "%-12s index=%d angle=%g\n", e.Kind, e.Index, e.Angle)
		case interaction.EventDrawBubble:
			fmt.Fprintf(w, "%-12s coords=%s\n", e.Kind, formatRect(e.Coords))
		case interaction.EventHint:
			fmt.Fprintf(w, "%-12s %s\n", e.Kind, e.Message)
		}
	}
}
