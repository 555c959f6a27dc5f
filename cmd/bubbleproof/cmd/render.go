package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/bubbleproof/internal/imageio"
	"github.com/OpenTraceLab/bubbleproof/internal/session"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/overlay"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

var (
	renderMax      int
	renderSelected []int
)

var renderCmd = &cobra.Command{
	Use:   "render <page.json> <out.png>",
	Short: "Render the page with its bubble overlay",
	Long: `Draw every bubble outline over the page image and save the result. The
image is scaled down to --max pixels on its longest side; outlines and
handles keep their pixel size.

Examples:
  bubbleproof render p001.json p001-overlay.png
  bubbleproof render --max 800 --select 2 p001.json p001-overlay.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVar(&renderMax, "max", 1600,
		"longest output side in pixels (0 = full size)")
	renderCmd.Flags().IntSliceVarP(&renderSelected, "select", "s", nil,
		"bubble indices to draw as selected; the first one gets handles")
}

func runRender(cmd *cobra.Command, args []string) error {
	pagePath, outPath := args[0], args[1]

	sess, err := session.Open(pagePath, session.DefaultOptions())
	if err != nil {
		return err
	}
	n := sess.Doc.Len()
	for i, idx := range renderSelected {
		if idx < 0 || idx >= n {
			return fmt.Errorf("bubble %d out of range [0,%d)", idx, n)
		}
		if i == 0 {
			sess.Sel.Select(idx)
		} else {
			sess.Sel.Toggle(idx)
		}
	}

	base, scale := imageio.Downscale(sess.Image, renderMax)
	cfg := sess.Renderer.Config()
	frame := overlay.Compute(sess.Doc.Bubbles(), interaction.Idle{}, sess.Sel, viewport.Transform{Scale: scale}, cfg)
	frame.Viewport = viewport.Original

	img, err := overlay.Rasterize(base, frame, cfg)
	if err != nil {
		return fmt.Errorf("failed to render overlay: %w", err)
	}
	if err := imageio.Save(img, outPath); err != nil {
		return err
	}

	w, h := imageio.Size(img)
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d bubbles to %s (%dx%d, scale %.3g)\n", n, outPath, w, h, scale)
	return nil
}
