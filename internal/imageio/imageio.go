// Package imageio decodes page images and writes rendered snapshots.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	// Decoders for formats the standard library lacks
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Open decodes the image at path, applying EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	return img, nil
}

// Size returns the pixel dimensions of img.
func Size(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Blank returns a white canvas, used when a page has no image on disk.
func Blank(width, height int) image.Image {
	return imaging.New(width, height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

// Downscale shrinks img so neither side exceeds maxDim and returns the
// applied scale. Images that already fit are returned unchanged.
func Downscale(img image.Image, maxDim int) (image.Image, float64) {
	w, h := Size(img)
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img, 1
	}
	out := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	return out, float64(out.Bounds().Dx()) / float64(w)
}

// Save writes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	var opts []imaging.EncodeOption
	low := strings.ToLower(path)
	if strings.HasSuffix(low, ".jpg") || strings.HasSuffix(low, ".jpeg") {
		opts = append(opts, imaging.JPEGQuality(92))
	}
	if err := imaging.Save(img, path, opts...); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	return nil
}
