package ngres

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/ngres/palette"
	"github.com/bodgit/ngres/tile"
	"github.com/ericpauley/go-quantize/quantize"
)

// Animation is a resolved animation of a visual asset.
type Animation struct {
	Name       string
	FirstFrame int
	FrameCount int
	Speed      int
	Loop       bool
}

// VisualAsset is one compiled sprite asset. Tiles for all of its
// frames have been appended to the C-ROM planes starting at BaseTile.
type VisualAsset struct {
	Name          string
	BaseTile      int
	WidthPixels   int
	HeightPixels  int
	WidthTiles    int
	HeightTiles   int
	TilesPerFrame int
	FrameCount    int
	Animations    []Animation
	Palette       *palette.Entry

	// Tilemap holds one entry per tile per frame in row-major
	// order. Each entry is the tile offset within the asset
	// (column-major, matching C-ROM order) with the HFlip bit set.
	Tilemap []uint16
}

// FixAsset is one compiled fix layer asset in the S-ROM.
type FixAsset struct {
	Name     string
	BaseTile int
	Tiles    int
	Palette  *palette.Entry
}

func (c *Compiler) visualAsset(def *VisualAssetDef) (*VisualAsset, error) {
	if def.Name == "" {
		return nil, &Error{Msg: "visual asset missing 'name' field"}
	}
	if def.Source == "" {
		return nil, errorf(def.Name, "missing 'source' field")
	}

	images, err := loadImage(def.Source)
	if err != nil {
		return nil, errorf(def.Name, "%v", err)
	}

	b := images[0].Bounds()
	if b.Dy() > maxHeight {
		return nil, errorf(def.Name, "height %d exceeds maximum of %d pixels", b.Dy(), maxHeight)
	}

	fw, fh := b.Dx(), b.Dy()
	if def.FrameSize != nil {
		if len(def.FrameSize) != 2 {
			return nil, errorf(def.Name, "frame_size must be [width, height]")
		}
		fw, fh = def.FrameSize[0], def.FrameSize[1]
	}
	if fw%tile.SpriteSize != 0 || fh%tile.SpriteSize != 0 {
		return nil, errorf(def.Name, "frame size must be multiples of %d (got %dx%d)",
			tile.SpriteSize, fw, fh)
	}

	var frames []*image.RGBA
	if len(images) > 1 {
		frames, err = tile.Frames(images, fw, fh)
	} else {
		frames, err = tile.Sheet(images[0], fw, fh)
	}
	if err != nil {
		return nil, errorf(def.Name, "%v", err)
	}
	frameCount := len(frames)

	if def.Quantize {
		frames = quantizeFrames(frames)
	}

	animations := make([]Animation, 0, len(def.Animations))
	for _, anim := range def.Animations {
		if len(anim.Frames) == 0 {
			return nil, errorf(def.Name, "animation '%s': missing frames", anim.Name)
		}
		for _, f := range anim.Frames {
			if f < 0 || f >= frameCount {
				return nil, errorf(def.Name, "animation '%s': frame %d out of range (0-%d)",
					anim.Name, f, frameCount-1)
			}
		}
		animations = append(animations, Animation{
			Name:       anim.Name,
			FirstFrame: anim.Frames[0],
			FrameCount: len(anim.Frames),
			Speed:      anim.Speed,
			Loop:       anim.Loop,
		})
	}

	entry, err := c.resolvePalette(def.Name, def.Palette, frames)
	if err != nil {
		return nil, err
	}

	tilesX, tilesY := fw/tile.SpriteSize, fh/tile.SpriteSize
	tilesPerFrame := tilesX * tilesY
	tilemap := make([]uint16, 0, frameCount*tilesPerFrame)

	for frameIdx, frame := range frames {
		indexed := entry.Palette.IndexFrame(frame)

		// C-ROM tiles are laid out column-major within a frame;
		// that is the order the sprite hardware fetches them in.
		for tx := 0; tx < tilesX; tx++ {
			for ty := 0; ty < tilesY; ty++ {
				var px tile.SpritePixels
				for y := 0; y < tile.SpriteSize; y++ {
					row := (ty*tile.SpriteSize + y) * fw
					for x := 0; x < tile.SpriteSize; x++ {
						px[y][x] = indexed[row+tx*tile.SpriteSize+x]
					}
				}
				c1, c2 := tile.Sprite(&px)
				c.c1.Write(c1[:])
				c.c2.Write(c2[:])
			}
		}

		// The tilemap handed to the SDK is row-major.
		base := frameIdx * tilesPerFrame
		for ty := 0; ty < tilesY; ty++ {
			for tx := 0; tx < tilesX; tx++ {
				tilemap = append(tilemap, uint16(base+tx*tilesY+ty)|tile.HFlip)
			}
		}
	}

	asset := &VisualAsset{
		Name:          def.Name,
		BaseTile:      c.baseTile,
		WidthPixels:   fw,
		HeightPixels:  fh,
		WidthTiles:    tilesX,
		HeightTiles:   tilesY,
		TilesPerFrame: tilesPerFrame,
		FrameCount:    frameCount,
		Animations:    animations,
		Palette:       entry,
		Tilemap:       tilemap,
	}

	c.baseTile += frameCount * tilesPerFrame
	return asset, nil
}

func (c *Compiler) fixAsset(def *FixAssetDef) (*FixAsset, error) {
	if def.Name == "" {
		return nil, &Error{Msg: "fix asset missing 'name' field"}
	}
	if def.Source == "" {
		return nil, errorf(def.Name, "missing 'source' field")
	}

	images, err := loadImage(def.Source)
	if err != nil {
		return nil, errorf(def.Name, "%v", err)
	}

	frames, err := tile.Sheet(images[0], tile.FixSize, tile.FixSize)
	if err != nil {
		return nil, errorf(def.Name, "%v", err)
	}

	entry, err := c.resolvePalette(def.Name, def.Palette, frames)
	if err != nil {
		return nil, err
	}

	asset := &FixAsset{
		Name:     def.Name,
		BaseTile: c.s1.Len() / tile.FixBytes,
		Tiles:    len(frames),
		Palette:  entry,
	}

	for _, frame := range frames {
		indexed := entry.Palette.IndexFrame(frame)
		var px tile.FixPixels
		for y := 0; y < tile.FixSize; y++ {
			for x := 0; x < tile.FixSize; x++ {
				px[y][x] = indexed[y*tile.FixSize+x]
			}
		}
		out := tile.Fix(&px)
		c.s1.Write(out[:])
	}

	return asset, nil
}

// resolvePalette resolves an asset's palette reference: a named
// palette must already be registered; an explicit index or an absent
// reference builds a palette from the asset's own frames.
func (c *Compiler) resolvePalette(assetName string, ref PaletteRef, frames []*image.RGBA) (*palette.Entry, error) {
	switch ref.kind {
	case refNamed:
		e := c.registry.Lookup(ref.Name)
		if e == nil {
			return nil, errorf(assetName, "references unknown palette '%s'", ref.Name)
		}
		return e, nil
	case refIndexed:
		p, distinct := palette.BuildFromFrames(frames, palette.Size)
		c.warnOverflow(assetName, distinct)
		return c.registry.RegisterAt(assetName, p, ref.Index), nil
	default:
		p, distinct := palette.BuildFromFrames(frames, palette.Size)
		c.warnOverflow(assetName, distinct)
		return c.registry.Register(assetName, p), nil
	}
}

func (c *Compiler) warnOverflow(name string, distinct int) {
	if distinct > palette.Size-1 {
		c.logger.Printf("warning: '%s' has %d colors but the hardware only supports %d (plus transparent); colors will be approximated",
			name, distinct, palette.Size-1)
	}
}

// quantizeFrames median-cuts all frames of an asset to at most 15
// opaque colors using a single shared palette, so the indexing step
// never has to approximate.
func quantizeFrames(frames []*image.RGBA) []*image.RGBA {
	if len(frames) == 0 {
		return frames
	}

	w, h := frames[0].Bounds().Dx(), frames[0].Bounds().Dy()
	composite := image.NewRGBA(image.Rect(0, 0, w, h*len(frames)))
	for i, f := range frames {
		draw.Draw(composite, image.Rect(0, i*h, w, (i+1)*h), f, f.Bounds().Min, draw.Src)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, palette.Size-1), composite)
	if len(p) == 0 {
		return frames
	}

	out := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		m := image.NewRGBA(f.Bounds())
		copy(m.Pix, f.Pix)
		for o := 0; o+3 < len(m.Pix); o += 4 {
			if m.Pix[o+3] < 128 {
				continue
			}
			r, g, b, _ := p.Convert(color.RGBA{m.Pix[o], m.Pix[o+1], m.Pix[o+2], 0xff}).RGBA()
			m.Pix[o], m.Pix[o+1], m.Pix[o+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
		out[i] = m
	}

	return out
}
