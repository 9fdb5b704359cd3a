package ngres

import (
	"os"

	"github.com/bodgit/ngres/adpcm"
	"github.com/bodgit/ngres/palette"
	"github.com/bodgit/ngres/tile"
)

const (
	// minCSize is the minimum size of each C-ROM plane file.
	minCSize = 64 << 10

	// minVSize is the minimum size of the V-ROM file.
	minVSize = 512 << 10
)

// Output is everything one compilation run produced. All buffers are
// final; the caller only has to write them out or hand them to a ROM
// packer.
type Output struct {
	C1, C2 []byte // sprite planes
	S1     []byte // fix layer plane
	V1     []byte // audio plane
	Tables []byte // Z80 sample address tables

	Palettes []*palette.Entry
	Visual   []*VisualAsset
	Fix      []*FixAsset
	SFX      []*AudioAsset
	Music    []*AudioAsset
	Tilemaps []*TilemapAsset

	// Tiles is the total sprite tile count including the reserved
	// system and eyecatcher banks.
	Tiles int
}

// Compile runs the whole pass over cfg in manifest order: explicit
// palettes, visual assets, fix assets, sound effects, music, then
// tilemaps. Any domain error aborts the run.
func (c *Compiler) Compile(cfg *Config) (*Output, error) {
	// Reserve the system and eyecatcher tile banks up front.
	c.c1.Write(make([]byte, tileStart*tile.SpriteBytes))
	c.c2.Write(make([]byte, tileStart*tile.SpriteBytes))

	if cfg.Eyecatcher != nil {
		if err := c.loadEyecatcher(cfg.Eyecatcher); err != nil {
			return nil, err
		}
	}

	out := &Output{}

	for i := range cfg.Palettes {
		np := &cfg.Palettes[i]
		p, err := c.paletteDef(np)
		if err != nil {
			return nil, err
		}
		e := c.registry.Register(np.Name, p)
		c.logger.Printf("palette '%s': index %d", e.Name, e.Index)
	}

	for i := range cfg.VisualAssets {
		asset, err := c.visualAsset(&cfg.VisualAssets[i])
		if err != nil {
			return nil, err
		}
		out.Visual = append(out.Visual, asset)
		c.logger.Printf("visual '%s': %dx%d, %d frames, %d tiles", asset.Name,
			asset.WidthPixels, asset.HeightPixels, asset.FrameCount,
			asset.FrameCount*asset.TilesPerFrame)
	}

	for i := range cfg.FixAssets {
		asset, err := c.fixAsset(&cfg.FixAssets[i])
		if err != nil {
			return nil, err
		}
		out.Fix = append(out.Fix, asset)
		c.logger.Printf("fix '%s': %d tiles", asset.Name, asset.Tiles)
	}

	for i := range cfg.SoundEffects {
		if i >= maxAudioAssets {
			c.logger.Printf("warning: maximum %d sound effects supported, ignoring extras", maxAudioAssets)
			break
		}
		def := &cfg.SoundEffects[i]
		if def.Name == "" {
			return nil, &Error{Msg: "sound effect missing 'name' field"}
		}
		if def.Source == "" {
			return nil, errorf(def.Name, "missing 'source' field")
		}

		data, err := c.encodeAudioFile(def.Name, def.Source, "adpcm-a", adpcm.RateA)
		if err != nil {
			return nil, err
		}
		asset, err := c.soundEffect(def.Name, data, i)
		if err != nil {
			return nil, err
		}
		out.SFX = append(out.SFX, asset)
		c.logger.Printf("sfx '%s': %d bytes", asset.Name, asset.Size)
	}

	for i := range cfg.Music {
		if i >= maxAudioAssets {
			c.logger.Printf("warning: maximum %d music tracks supported, ignoring extras", maxAudioAssets)
			break
		}
		def := &cfg.Music[i]
		if def.Name == "" {
			return nil, &Error{Msg: "music missing 'name' field"}
		}
		if def.Source == "" {
			return nil, errorf(def.Name, "missing 'source' field")
		}

		rate := def.SampleRate
		if rate == 0 {
			rate = adpcm.RateB
		}

		data, err := c.encodeAudioFile(def.Name, def.Source, "adpcm-b", rate)
		if err != nil {
			return nil, err
		}
		asset, err := c.music(def.Name, data, rate, i)
		if err != nil {
			return nil, err
		}
		out.Music = append(out.Music, asset)
		c.logger.Printf("music '%s': %d bytes @ %dHz", asset.Name, asset.Size, rate)
	}

	for i := range cfg.Tilemaps {
		asset, err := c.tilemapAsset(&cfg.Tilemaps[i], out.Visual)
		if err != nil {
			return nil, err
		}
		out.Tilemaps = append(out.Tilemaps, asset)
		c.logger.Printf("tilemap '%s': %dx%d tiles", asset.Name, asset.WidthTiles, asset.HeightTiles)
	}

	out.C1 = padTo(c.c1.Bytes(), minCSize)
	out.C2 = padTo(c.c2.Bytes(), minCSize)
	out.S1 = c.s1.Bytes()
	if len(out.SFX) > 0 || len(out.Music) > 0 {
		out.V1 = padTo(c.v1.Bytes(), minVSize)
		out.Tables = sampleTables(out.SFX, out.Music)
	}
	out.Palettes = c.registry.Entries()
	out.Tiles = c.baseTile

	return out, nil
}

// paletteDef builds a palette from an explicit manifest definition.
func (c *Compiler) paletteDef(np *NamedPalette) (palette.Palette, error) {
	switch {
	case len(np.Colors) > 0:
		colors := np.Colors
		if len(colors) > palette.Size {
			c.logger.Printf("warning: palette '%s' has more than %d colors, truncating", np.Name, palette.Size)
			colors = colors[:palette.Size]
		}
		return palette.FromHardware(colors), nil

	case np.Source != "":
		images, err := loadImage(np.Source)
		if err != nil {
			return palette.Palette{}, errorf(np.Name, "failed to load palette source: %v", err)
		}
		b := images[0].Bounds()
		frames, err := tile.Sheet(images[0], b.Dx(), b.Dy())
		if err != nil {
			return palette.Palette{}, errorf(np.Name, "%v", err)
		}
		p, distinct := palette.BuildFromFrames(frames, palette.Size)
		c.warnOverflow(np.Name, distinct)
		return p, nil

	default:
		return palette.Palette{}, errorf(np.Name, "must have either 'colors' or 'source'")
	}
}

// loadEyecatcher copies pre-encoded eyecatcher tiles into the
// reserved bank of the C-ROM planes.
func (c *Compiler) loadEyecatcher(def *EyecatcherDef) error {
	const bankBytes = (tileStart - eyecatcherTile) * tile.SpriteBytes

	for _, half := range []struct {
		path string
		dst  []byte
	}{
		{def.C1, c.c1.Bytes()},
		{def.C2, c.c2.Bytes()},
	} {
		if half.path == "" {
			continue
		}
		b, err := os.ReadFile(half.path)
		if err != nil {
			return errorf("eyecatcher", "%v", err)
		}
		if len(b) > bankBytes {
			c.logger.Printf("warning: eyecatcher %s is %d bytes, truncating to bank size %d",
				half.path, len(b), bankBytes)
			b = b[:bankBytes]
		}
		copy(half.dst[eyecatcherTile*tile.SpriteBytes:], b)
	}

	return nil
}

func padTo(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	return append(b, make([]byte, size-len(b))...)
}
