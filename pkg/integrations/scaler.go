package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/kerbaras/guya/pkg/preferences"
)

// Viewport is the target display size of exported pages.
type Viewport struct {
	Name   string
	Width  int
	Height int
}

// Viewports are common e-reader screens.
var Viewports = map[string]Viewport{
	"kindle-paperwhite": {Name: "Kindle Paperwhite", Width: 1072, Height: 1448},
	"kindle-oasis":      {Name: "Kindle Oasis", Width: 1264, Height: 1680},
	"kobo-clara":        {Name: "Kobo Clara HD", Width: 1072, Height: 1448},
	"tablet":            {Name: "Tablet", Width: 1536, Height: 2048},
}

const DefaultViewport = "kindle-paperwhite"

// Scaler fits page images to a viewport according to a scaling mode.
type Scaler struct {
	Mode      preferences.ScalingMode
	Viewport  Viewport
	Grayscale bool
	Quality   int
}

func NewScaler(mode preferences.ScalingMode, viewport Viewport) *Scaler {
	return &Scaler{Mode: mode, Viewport: viewport, Quality: 90}
}

// Dimensions returns the scaled size of a width x height image. Images are
// never enlarged.
func (s *Scaler) Dimensions(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	var scale float64
	switch s.Mode {
	case preferences.ScaleWidth:
		scale = float64(s.Viewport.Width) / float64(width)
	case preferences.ScaleHeight:
		scale = float64(s.Viewport.Height) / float64(height)
	case preferences.ScaleProportionally:
		scale = min(float64(s.Viewport.Width)/float64(width), float64(s.Viewport.Height)/float64(height))
	default:
		return width, height
	}
	if scale >= 1 {
		return width, height
	}
	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

// Scale returns the page ready for export. Untouched pages are returned
// as they are.
func (s *Scaler) Scale(page ImageData) (ImageData, error) {
	if s.Mode == preferences.ScaleOriginal && !s.Grayscale {
		return page, nil
	}

	img, _, err := image.Decode(bytes.NewReader(page.Content))
	if err != nil {
		return ImageData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := s.Dimensions(bounds.Dx(), bounds.Dy())
	if w == bounds.Dx() && h == bounds.Dy() && !s.Grayscale {
		return page, nil
	}

	var out image.Image = img
	if w != bounds.Dx() || h != bounds.Dy() {
		out = resize(img, w, h)
	}
	if s.Grayscale {
		out = toGrayscale(out)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: s.Quality}); err != nil {
		return ImageData{}, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return ImageData{Content: buf.Bytes(), ContentType: "image/jpeg", Index: page.Index}, nil
}

func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func toGrayscale(img image.Image) image.Image {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}
