package viewport

import "fmt"

// Config controls zoom steps and limits for a viewport controller.
type Config struct {
	ZoomInFactor  float64 // Multiplier applied by ZoomIn (default: 1.1)
	ZoomOutFactor float64 // Multiplier applied by ZoomOut (default: 0.9)
	WheelFactor   float64 // Multiplier per wheel notch for hosts (default: 1.1)

	MinScale float64 // Lower scale bound (default: 0.05)
	MaxScale float64 // Upper scale bound (default: 20)

	// FitMargin is the share of the viewport used by FitToScreen (default: 0.95)
	FitMargin float64
}

// DefaultConfig returns the standard zoom behavior.
func DefaultConfig() Config {
	return Config{
		ZoomInFactor:  1.1,
		ZoomOutFactor: 0.9,
		WheelFactor:   1.1,
		MinScale:      0.05,
		MaxScale:      20,
		FitMargin:     0.95,
	}
}

// Validate fills unset fields with defaults and rejects inconsistent limits.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.ZoomInFactor <= 0 {
		c.ZoomInFactor = def.ZoomInFactor
	}
	if c.ZoomOutFactor <= 0 {
		c.ZoomOutFactor = def.ZoomOutFactor
	}
	if c.WheelFactor <= 1 {
		c.WheelFactor = def.WheelFactor
	}
	if c.MinScale <= 0 {
		c.MinScale = def.MinScale
	}
	if c.MaxScale <= 0 {
		c.MaxScale = def.MaxScale
	}
	if c.FitMargin <= 0 || c.FitMargin > 1 {
		c.FitMargin = def.FitMargin
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("viewport: min scale %g exceeds max scale %g", c.MinScale, c.MaxScale)
	}
	return nil
}
