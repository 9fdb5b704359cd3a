package tile

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpriteUniform(t *testing.T) {
	var px SpritePixels
	for y := range px {
		for x := range px[y] {
			px[y][x] = 1
		}
	}

	c1, c2 := Sprite(&px)

	// Index 1 sets only bitplane 0, so C1 alternates a full bp0 byte
	// with an empty bp1 byte and C2 stays clear.
	for i := 0; i < SpriteBytes; i += 2 {
		assert.Equal(t, byte(0xff), c1[i])
		assert.Equal(t, byte(0x00), c1[i+1])
	}
	assert.Equal(t, [SpriteBytes]byte{}, c2)
}

func TestSpriteQuadrantOrder(t *testing.T) {
	tests := []struct {
		x, y   int
		offset int
	}{
		{0, 0, 0},   // top-left
		{0, 8, 16},  // bottom-left
		{8, 0, 32},  // top-right
		{8, 8, 48},  // bottom-right
	}

	for _, tt := range tests {
		var px SpritePixels
		px[tt.y][tt.x] = 1

		c1, c2 := Sprite(&px)

		// Leftmost pixel of a quadrant row lands in bit 7.
		var want [SpriteBytes]byte
		want[tt.offset] = 0x80
		assert.Equal(t, want, c1)
		assert.Equal(t, [SpriteBytes]byte{}, c2)
	}
}

func TestSpriteBitplanes(t *testing.T) {
	var px SpritePixels
	// Rightmost pixel of the top-right quadrant's first row, all four
	// bitplanes set.
	px[0][15] = 0xf

	c1, c2 := Sprite(&px)

	var wantC1, wantC2 [SpriteBytes]byte
	wantC1[32], wantC1[33] = 0x01, 0x01
	wantC2[32], wantC2[33] = 0x01, 0x01
	assert.Equal(t, wantC1, c1)
	assert.Equal(t, wantC2, c2)
}

func TestFixColumnOrder(t *testing.T) {
	var px FixPixels
	for y := 0; y < FixSize; y++ {
		for x := 0; x < FixSize; x++ {
			px[y][x] = uint8(x)
		}
	}

	out := Fix(&px)

	// Right half first, left pixel in the low nibble.
	want := [4]byte{0x54, 0x76, 0x10, 0x32}
	for i, b := range want {
		for row := 0; row < FixSize; row++ {
			assert.Equal(t, b, out[i*FixSize+row])
		}
	}
}

func TestFixMasksHighBits(t *testing.T) {
	var px FixPixels
	px[0][4] = 0x1f
	px[0][5] = 0xff

	out := Fix(&px)
	assert.Equal(t, byte(0xff), out[0])
}

func uniform(w, h int, c color.Color) image.Image {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return m
}

func TestSheetSingleFrame(t *testing.T) {
	frames, err := Sheet(uniform(16, 16, color.White), 16, 16)
	assert.NoError(t, err)
	assert.Len(t, frames, 1)
}

func TestSheetRowMajor(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 32, 32))
	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 255, 255},
	}
	for i, c := range colors {
		x, y := (i%2)*16, (i/2)*16
		draw.Draw(m, image.Rect(x, y, x+16, y+16), &image.Uniform{c}, image.Point{}, draw.Src)
	}

	frames, err := Sheet(m, 16, 16)
	assert.NoError(t, err)
	assert.Len(t, frames, 4)

	for i, c := range colors {
		r, g, b, a := frames[i].At(0, 0).RGBA()
		assert.Equal(t, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}, c)
	}
}

func TestSheetNotDivisible(t *testing.T) {
	_, err := Sheet(uniform(20, 16, color.White), 16, 16)
	assert.Error(t, err)

	_, err = Sheet(uniform(16, 20, color.White), 16, 16)
	assert.Error(t, err)
}

func TestFramesSizeMismatch(t *testing.T) {
	images := []image.Image{
		uniform(16, 16, color.White),
		uniform(16, 32, color.White),
	}

	_, err := Frames(images, 16, 16)
	assert.Error(t, err)

	frames, err := Frames(images[:1], 16, 16)
	assert.NoError(t, err)
	assert.Len(t, frames, 1)
}
