package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

var (
	outputJSON bool
)

var infoCmd = &cobra.Command{
	Use:   "info <page.json>",
	Short: "Show the bubbles of a page",
	Long: `Load a page document, normalize it the way the editor does, and list its
bubbles. Bubbles that break the editing invariants are flagged.

Examples:
  bubbleproof info p001.json
  bubbleproof info --json p001.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false,
		"print the normalized page as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	page, err := bubble.LoadPage(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if outputJSON {
		return bubble.WritePage(out, page)
	}

	size := page.Bounds()
	image := page.Image
	if image == "" {
		image = "(none)"
	}
	fmt.Fprintf(out, "Page:    %s\n", args[0])
	fmt.Fprintf(out, "Image:   %s\n", image)
	if page.Width > 0 && page.Height > 0 {
		fmt.Fprintf(out, "Size:    %gx%g\n", size.Width, size.Height)
	} else {
		fmt.Fprintf(out, "Size:    unknown (using %gx%g)\n", size.Width, size.Height)
	}
	fmt.Fprintf(out, "Bubbles: %d\n", len(page.Bubbles))

	invalid := 0
	for i, b := range page.Bubbles {
		fmt.Fprintf(out, "  [%d] %s", i, formatRect(b.Coords))
		if b.RotationAngle != 0 {
			fmt.Fprintf(out, " rot=%g", b.RotationAngle)
		}
		if b.Text != "" {
			fmt.Fprintf(out, " %q", b.Text)
		}
		if err := b.Validate(); err != nil {
			invalid++
			fmt.Fprintf(out, " INVALID: %v", err)
		}
		fmt.Fprintln(out)
	}
	if invalid > 0 {
		fmt.Fprintf(out, "%d bubble(s) need fixing\n", invalid)
	}
	return nil
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("(%g,%g)-(%g,%g) %gx%g", r.X1, r.Y1, r.X2, r.Y2, r.Width(), r.Height())
}
