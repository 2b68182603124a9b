package integrations

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/preferences"
)

func TestScaler_Dimensions(t *testing.T) {
	vp := Viewport{Width: 100, Height: 200}

	tests := []struct {
		mode  preferences.ScalingMode
		w, h  int
		wantW int
		wantH int
	}{
		{preferences.ScaleWidth, 400, 600, 100, 150},
		{preferences.ScaleHeight, 400, 600, 133, 200},
		{preferences.ScaleProportionally, 400, 600, 100, 150},
		{preferences.ScaleProportionally, 100, 1000, 20, 200},
		{preferences.ScaleOriginal, 400, 600, 400, 600},
		{preferences.ScaleWidth, 50, 80, 50, 80},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			w, h := NewScaler(tt.mode, vp).Dimensions(tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestScaler_Scale(t *testing.T) {
	page := ImageData{Content: testPNG(t, 40, 60), ContentType: "image/png", Index: 3}

	t.Run("original is untouched", func(t *testing.T) {
		out, err := NewScaler(preferences.ScaleOriginal, Viewport{Width: 10, Height: 10}).Scale(page)
		require.NoError(t, err)
		assert.Equal(t, page, out)
	})

	t.Run("small page is untouched", func(t *testing.T) {
		out, err := NewScaler(preferences.ScaleWidth, Viewport{Width: 100, Height: 100}).Scale(page)
		require.NoError(t, err)
		assert.Equal(t, page, out)
	})

	t.Run("downscaled to jpeg", func(t *testing.T) {
		out, err := NewScaler(preferences.ScaleWidth, Viewport{Width: 20, Height: 20}).Scale(page)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", out.ContentType)
		assert.Equal(t, 3, out.Index)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Content))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 20, cfg.Width)
		assert.Equal(t, 30, cfg.Height)
	})

	t.Run("grayscale", func(t *testing.T) {
		s := NewScaler(preferences.ScaleOriginal, Viewport{})
		s.Grayscale = true
		out, err := s.Scale(page)
		require.NoError(t, err)
		img, _, err := image.Decode(bytes.NewReader(out.Content))
		require.NoError(t, err)
		assert.Equal(t, 40, img.Bounds().Dx())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewScaler(preferences.ScaleWidth, Viewport{Width: 1, Height: 1}).Scale(ImageData{Content: []byte("nope")})
		assert.Error(t, err)
	})
}
