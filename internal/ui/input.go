package ui

import (
	"gioui.org/f32"
	"gioui.org/io/key"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

// modifiers maps Gio key modifiers onto the engine's set. Command and Super
// both count as meta so multi-select works with Cmd on macOS.
func modifiers(m key.Modifiers) interaction.Modifiers {
	var out interaction.Modifiers
	if m.Contain(key.ModShift) {
		out |= interaction.ModShift
	}
	if m.Contain(key.ModCtrl) {
		out |= interaction.ModCtrl
	}
	if m.Contain(key.ModAlt) {
		out |= interaction.ModAlt
	}
	if m.Contain(key.ModCommand) || m.Contain(key.ModSuper) {
		out |= interaction.ModMeta
	}
	return out
}

// wheelZoom returns the zoom factor for a vertical scroll amount: scrolling
// up zooms in by step, down zooms out by its inverse, zero leaves the view.
func wheelZoom(scrollY float32, step float64) float64 {
	switch {
	case scrollY < 0:
		return step
	case scrollY > 0:
		return 1 / step
	}
	return 1
}

func toPoint(p f32.Point) geometry.Point {
	return geometry.Pt(float64(p.X), float64(p.Y))
}

func toF32(p geometry.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}
