package overlay

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

type rgba struct{ r, g, b, a float64 }

var (
	colorPlain   = rgba{0.20, 0.55, 1.00, 0.90}
	colorMulti   = rgba{1.00, 0.60, 0.10, 0.95}
	colorPrimary = rgba{0.10, 0.80, 0.35, 1.00}
	colorHandle  = rgba{1.00, 1.00, 1.00, 1.00}
	colorDraft   = rgba{0.90, 0.20, 0.60, 0.90}
)

func (c rgba) set(dc *gg.Context) { dc.SetRGBA(c.r, c.g, c.b, c.a) }

// Rasterize draws a frame on top of a copy of base. The frame must have
// been computed for a transform that maps into base's pixel grid.
func Rasterize(base image.Image, frame Frame, cfg Config) (image.Image, error) {
	dc := gg.NewContextForImage(base)
	defer dc.Close()

	dc.SetLineWidth(cfg.BorderWidth)
	for _, st := range frame.Styles {
		switch st.Kind {
		case KindPrimary:
			colorPrimary.set(dc)
		case KindMulti:
			colorMulti.set(dc)
		default:
			colorPlain.set(dc)
		}
		dc.MoveTo(st.Corners[0].X, st.Corners[0].Y)
		for _, c := range st.Corners[1:] {
			dc.LineTo(c.X, c.Y)
		}
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("overlay: stroke bubble %d: %w", st.Index, err)
		}
		if !st.Selected() {
			continue
		}

		dc.DrawLine(st.Connector[0].X, st.Connector[0].Y, st.Connector[1].X, st.Connector[1].Y)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("overlay: stroke connector: %w", err)
		}
		dc.DrawCircle(st.Rotate.X, st.Rotate.Y, cfg.RotateRadius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("overlay: fill rotate handle: %w", err)
		}

		colorHandle.set(dc)
		for _, hm := range st.Handles {
			dc.DrawRectangle(hm.Box.X1, hm.Box.Y1, hm.Box.Width(), hm.Box.Height())
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("overlay: fill handle %s: %w", hm.Handle, err)
			}
		}
	}

	if d := frame.Draft; d != nil {
		colorDraft.set(dc)
		dc.SetDash(6, 4)
		dc.DrawRectangle(d.X1, d.Y1, d.Width(), d.Height())
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("overlay: stroke draft: %w", err)
		}
		dc.SetDash()
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("overlay: flush: %w", err)
	}
	return dc.Image(), nil
}
