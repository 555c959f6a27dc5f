package viewport

import (
	"math"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// Controller owns the transform of one viewport and implements its zoom and
// pan operations. It is not safe for concurrent use; hosts drive it from
// their event loop.
type Controller struct {
	name Name
	cfg  Config
	t    Transform

	// Pan state
	panning bool
	last    geometry.Point

	listeners []func(Transform)

	// mirror is installed by a Pair and runs after every local mutation.
	mirror func(from *Controller)
}

// NewController returns a controller with the identity transform.
func NewController(name Name, cfg Config) *Controller {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}
	return &Controller{name: name, cfg: cfg, t: Identity()}
}

// Name returns which pane the controller drives.
func (c *Controller) Name() Name { return c.name }

// Config returns the zoom configuration.
func (c *Controller) Config() Config { return c.cfg }

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// OnChange registers fn to run whenever the transform changes, including
// changes mirrored from a synced sibling.
func (c *Controller) OnChange(fn func(Transform)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// ZoomIn multiplies the scale by ZoomInFactor. Translation is unchanged.
func (c *Controller) ZoomIn() {
	c.scaleBy(c.cfg.ZoomInFactor)
}

// ZoomOut multiplies the scale by ZoomOutFactor. Translation is unchanged.
func (c *Controller) ZoomOut() {
	c.scaleBy(c.cfg.ZoomOutFactor)
}

func (c *Controller) scaleBy(factor float64) {
	if !usableFactor(factor) {
		return
	}
	t := c.t
	t.Scale = c.clampScale(t.Scale * factor)
	c.apply(t)
}

// ZoomAt scales by factor while keeping the image point under the screen
// position (screenX, screenY) fixed.
func (c *Controller) ZoomAt(screenX, screenY, factor float64) {
	if !usableFactor(factor) {
		return
	}
	anchor := geometry.Pt(screenX, screenY)
	if !anchor.Finite() {
		return
	}
	img := c.t.ToImageSpace(anchor)
	scale := c.clampScale(c.t.Scale * factor)
	c.apply(Transform{
		Scale:      scale,
		TranslateX: screenX - img.X*scale,
		TranslateY: screenY - img.Y*scale,
	})
}

// ResetZoom restores the identity transform.
func (c *Controller) ResetZoom() {
	c.apply(Identity())
}

// FitToScreen scales the image to fill FitMargin of the viewport and
// centers it. Empty sizes leave the transform unchanged.
func (c *Controller) FitToScreen(viewSize, imageSize geometry.Size) {
	if viewSize.Empty() || imageSize.Empty() {
		return
	}
	scale := math.Min(viewSize.Width/imageSize.Width, viewSize.Height/imageSize.Height) * c.cfg.FitMargin
	scale = c.clampScale(scale)
	c.apply(Transform{
		Scale:      scale,
		TranslateX: (viewSize.Width - imageSize.Width*scale) / 2,
		TranslateY: (viewSize.Height - imageSize.Height*scale) / 2,
	})
}

// StartDrag begins panning from a screen position.
func (c *Controller) StartDrag(screen geometry.Point) {
	c.panning = true
	c.last = screen
}

// Drag pans by the screen distance moved since the previous call. Screen
// deltas are applied directly to the translation.
func (c *Controller) Drag(screen geometry.Point) {
	if !c.panning || !screen.Finite() {
		return
	}
	d := screen.Sub(c.last)
	c.last = screen
	if d.X == 0 && d.Y == 0 {
		return
	}
	t := c.t
	t.TranslateX += d.X
	t.TranslateY += d.Y
	c.apply(t)
}

// EndDrag stops panning.
func (c *Controller) EndDrag() {
	c.panning = false
}

// Panning reports whether a pan is in progress.
func (c *Controller) Panning() bool { return c.panning }

// SetTransform restores a saved transform. Invalid transforms are ignored.
func (c *Controller) SetTransform(t Transform) {
	if !t.Valid() {
		return
	}
	t.Scale = c.clampScale(t.Scale)
	c.apply(t)
}

func (c *Controller) apply(t Transform) {
	c.assign(t)
	if c.mirror != nil {
		c.mirror(c)
	}
}

// assign overwrites the transform and notifies listeners without mirroring.
func (c *Controller) assign(t Transform) {
	c.t = t
	for _, fn := range c.listeners {
		fn(t)
	}
}

func (c *Controller) clampScale(s float64) float64 {
	if s < c.cfg.MinScale {
		return c.cfg.MinScale
	}
	if s > c.cfg.MaxScale {
		return c.cfg.MaxScale
	}
	return s
}

func usableFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
