/*
Package palette implements 16-color hardware palette construction for
NeoGeo sprite and fix graphics.

The hardware stores 15-bit RGB colors, 5 bits per channel, with the
low bit of each channel packed into a separate high-order bit group.
Slot 0 of every palette is the transparent color and never matches a
real pixel; visible colors occupy slots 1-15.
*/
package palette

import "image"

const (
	// Size is the number of slots in a hardware palette.
	Size = 16

	// Transparent is the hardware value written to slot 0.
	Transparent = 0x8000

	// alphaThreshold is the minimum alpha for a pixel to be
	// considered visible.
	alphaThreshold = 128
)

// Color is a 15-bit hardware color, 5 significant bits per channel.
type Color struct {
	R, G, B uint8
}

// Packed returns c in the hardware format: the upper four bits of
// each channel occupy a nibble group and the low bit of each channel
// is stored separately in bits 14-12.
func (c Color) Packed() uint16 {
	v := uint16(c.R&1)<<14 | uint16(c.G&1)<<13 | uint16(c.B&1)<<12
	v |= uint16(c.R>>1&0x0f)<<8 | uint16(c.G>>1&0x0f)<<4 | uint16(c.B>>1&0x0f)
	return v
}

// UnpackColor is the bit-exact inverse of Packed, so re-encoding a
// manually supplied hardware color is idempotent.
func UnpackColor(v uint16) Color {
	return Color{
		R: uint8(v>>8&0x0f)<<1 | uint8(v>>14&1),
		G: uint8(v>>4&0x0f)<<1 | uint8(v>>13&1),
		B: uint8(v&0x0f)<<1 | uint8(v>>12&1),
	}
}

// quantize discards the three low bits of each 8-bit channel.
func quantize(r, g, b uint8) Color {
	return Color{r >> 3, g >> 3, b >> 3}
}

// Palette is an ordered set of up to 16 colors. Slot 0 is reserved
// for transparency and its stored color is meaningless. N counts the
// slots in use including slot 0; slots beyond N are zero-filled when
// the palette is emitted.
type Palette struct {
	Colors [Size]Color
	N      int
}

// BuildFromFrames builds a palette from every visible pixel across
// frames. Channels are quantized to 5 bits, colors are tallied and
// the most frequent maxColors-1 take slots 1 onward; ties keep
// first-seen order. The number of distinct quantized colors is
// returned so the caller can warn when some had to be dropped.
func BuildFromFrames(frames []*image.RGBA, maxColors int) (Palette, int) {
	count := make(map[Color]int)
	var seen []Color

	for _, m := range frames {
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
				if m.Pix[i+3] < alphaThreshold {
					continue
				}
				c := quantize(m.Pix[i], m.Pix[i+1], m.Pix[i+2])
				if count[c] == 0 {
					seen = append(seen, c)
				}
				count[c]++
			}
		}
	}

	// Insertion sort keeps equal counts in first-seen order.
	for i := 1; i < len(seen); i++ {
		for j := i; j > 0 && count[seen[j]] > count[seen[j-1]]; j-- {
			seen[j], seen[j-1] = seen[j-1], seen[j]
		}
	}

	var p Palette
	p.N = 1
	for _, c := range seen {
		if p.N == maxColors {
			break
		}
		p.Colors[p.N] = c
		p.N++
	}

	return p, len(seen)
}

// FromHardware builds a palette from colors already in hardware
// format, decoding each back to 5-bit RGB. Slot 0 is skipped; the
// palette is padded to the full 16 slots as the hardware expects.
func FromHardware(colors []uint16) Palette {
	var p Palette
	p.N = Size
	for i, v := range colors {
		if i == 0 || i >= Size {
			continue
		}
		p.Colors[i] = UnpackColor(v)
	}
	return p
}

// IndexFrame maps every pixel of m to a palette slot. Pixels below
// the visibility threshold index to 0. Visible pixels are quantized
// and matched exactly where possible; otherwise the nearest slot by
// squared distance wins, with the lowest slot breaking ties. The
// result is in row-major order.
func (p *Palette) IndexFrame(m *image.RGBA) []uint8 {
	lookup := make(map[Color]uint8, p.N)
	for i := 1; i < p.N; i++ {
		lookup[p.Colors[i]] = uint8(i)
	}

	b := m.Bounds()
	indexed := make([]uint8, 0, b.Dx()*b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			if m.Pix[i+3] < alphaThreshold {
				indexed = append(indexed, 0)
				continue
			}

			c := quantize(m.Pix[i], m.Pix[i+1], m.Pix[i+2])
			if idx, ok := lookup[c]; ok {
				indexed = append(indexed, idx)
				continue
			}

			indexed = append(indexed, p.nearest(c))
		}
	}

	return indexed
}

func (p *Palette) nearest(c Color) uint8 {
	idx, best := uint8(1), int(^uint(0)>>1)
	for i := 1; i < p.N; i++ {
		d := sqDiff(c.R, p.Colors[i].R) + sqDiff(c.G, p.Colors[i].G) + sqDiff(c.B, p.Colors[i].B)
		if d < best {
			best, idx = d, uint8(i)
		}
	}
	return idx
}

func sqDiff(x, y uint8) int {
	d := int(x) - int(y)
	return d * d
}

// Hardware returns the palette laid out for the hardware: slot 0 is
// the transparent sentinel, unused slots are zero.
func (p *Palette) Hardware() [Size]uint16 {
	var out [Size]uint16
	out[0] = Transparent
	for i := 1; i < p.N; i++ {
		out[i] = p.Colors[i].Packed()
	}
	return out
}
