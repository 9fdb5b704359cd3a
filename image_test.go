package ngres

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImagePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.png")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	require.NoError(t, f.Close())

	frames, err := loadImage(path)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 16, frames[0].Bounds().Dx())
}

func TestLoadImageGIF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anim.gif")

	pal := color.Palette{
		color.RGBA{0, 0, 0, 0},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
	}

	// Frame 1 fills the canvas, frame 2 only touches the right half.
	// Coalescing must carry frame 1's pixels into frame 2.
	f1 := image.NewPaletted(image.Rect(0, 0, 16, 16), pal)
	for i := range f1.Pix {
		f1.Pix[i] = 1
	}
	f2 := image.NewPaletted(image.Rect(8, 0, 16, 16), pal)
	for i := range f2.Pix {
		f2.Pix[i] = 2
	}

	g := &gif.GIF{
		Image:    []*image.Paletted{f1, f2},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalNone},
		Config: image.Config{
			Width:  16,
			Height: 16,
		},
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gif.EncodeAll(f, g))
	require.NoError(t, f.Close())

	frames, err := loadImage(path)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	r, _, _, _ := frames[0].At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	// Left half of frame 2 still shows frame 1's red.
	r, g2, _, _ := frames[1].At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	_, g3, _, _ := frames[1].At(12, 0).RGBA()
	assert.Equal(t, uint32(0), g2)
	assert.Equal(t, uint32(0xffff), g3)
}

func TestLoadImageMissing(t *testing.T) {
	_, err := loadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
