package bubble

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// Page is the document exchanged with the detection and session layers: one
// image and the bubbles found on it.
type Page struct {
	Image   string   `json:"image,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Bubbles []Bubble `json:"bubbles"`
}

// Bounds returns the image size, falling back to the default page size
// while real dimensions are unknown.
func (p *Page) Bounds() geometry.Size {
	w, h := p.Width, p.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultImageWidth, DefaultImageHeight
	}
	return geometry.Sz(float64(w), float64(h))
}

// Normalize converts polygon-only bubbles into rectangles and folds every
// rotation into (-180, 180].
func (p *Page) Normalize() error {
	for i := range p.Bubbles {
		b := &p.Bubbles[i]
		if b.Coords == (geometry.Rect{}) && len(b.Polygon) > 0 {
			nb, err := FromPolygon(b.Polygon)
			if err != nil {
				return fmt.Errorf("bubble %d: %w", i, err)
			}
			b.Coords = nb.Coords
		}
		b.Coords = b.Coords.Normalize()
		b.RotationAngle = geometry.NormalizeAngle(b.RotationAngle)
	}
	return nil
}

// ReadPage decodes and normalizes a page document.
func ReadPage(r io.Reader) (*Page, error) {
	var page Page
	if err := json.NewDecoder(r).Decode(&page); err != nil {
		return nil, fmt.Errorf("bubble: decode page: %w", err)
	}
	if err := page.Normalize(); err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}
	return &page, nil
}

// LoadPage reads a page document from disk.
func LoadPage(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bubble: open page: %w", err)
	}
	defer f.Close()
	return ReadPage(f)
}

// WritePage encodes a page as indented JSON.
func WritePage(w io.Writer, page *Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		return fmt.Errorf("bubble: encode page: %w", err)
	}
	return nil
}

// SavePage writes a page document to disk.
func SavePage(path string, page *Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bubble: create page: %w", err)
	}
	if err := WritePage(f, page); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
