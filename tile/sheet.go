package tile

import (
	"fmt"
	"image"
	"image/draw"
)

// Frames validates a multi-frame sequence (for example the frames of
// an animated GIF) against the declared frame size and normalizes
// each frame to RGBA. Every frame must match the frame size exactly.
func Frames(images []image.Image, fw, fh int) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, 0, len(images))
	for _, m := range images {
		b := m.Bounds()
		if b.Dx() != fw || b.Dy() != fh {
			return nil, fmt.Errorf("frame size %dx%d must match declared frame size %dx%d",
				b.Dx(), b.Dy(), fw, fh)
		}
		out = append(out, toRGBA(m))
	}
	return out, nil
}

// Sheet splits a static sprite sheet into frames of fw by fh pixels,
// walked row-major. Both sheet dimensions must be evenly divisible by
// the frame size; a sheet matching the frame size exactly is a single
// frame.
func Sheet(m image.Image, fw, fh int) ([]*image.RGBA, error) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	if w == fw && h == fh {
		return []*image.RGBA{toRGBA(m)}, nil
	}

	if w%fw != 0 {
		return nil, fmt.Errorf("image width %d is not divisible by frame width %d", w, fw)
	}
	if h%fh != 0 {
		return nil, fmt.Errorf("image height %d is not divisible by frame height %d", h, fh)
	}

	cols, rows := w/fw, h/fh
	out := make([]*image.RGBA, 0, cols*rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frame := image.NewRGBA(image.Rect(0, 0, fw, fh))
			draw.Draw(frame, frame.Bounds(), m, b.Min.Add(image.Pt(col*fw, row*fh)), draw.Src)
			out = append(out, frame)
		}
	}

	return out, nil
}

func toRGBA(m image.Image) *image.RGBA {
	if rgba, ok := m.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := m.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)
	return rgba
}
