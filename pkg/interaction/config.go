package interaction

import (
	"fmt"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// Config controls the engine's geometry limits.
type Config struct {
	MinSize     float64 // Smallest committed width/height (default: 10)
	SnapDegrees float64 // Rotation step with the snap modifier (default: 15)

	// DefaultImageSize is used for clamping while the document has no
	// image size (default: 2000x2000).
	DefaultImageSize geometry.Size
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		MinSize:          bubble.MinSize,
		SnapDegrees:      geometry.DefaultSnapDegrees,
		DefaultImageSize: geometry.Sz(bubble.DefaultImageWidth, bubble.DefaultImageHeight),
	}
}

// Validate fills unset fields with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.MinSize == 0 {
		c.MinSize = def.MinSize
	}
	if c.MinSize < 0 {
		return fmt.Errorf("interaction: negative min size %g", c.MinSize)
	}
	if c.SnapDegrees <= 0 {
		c.SnapDegrees = def.SnapDegrees
	}
	if c.DefaultImageSize.Empty() {
		c.DefaultImageSize = def.DefaultImageSize
	}
	return nil
}
