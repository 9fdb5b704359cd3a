/*
Package ngres compiles portable source assets into the binary layouts
used by NeoGeo hardware: sprite graphics into the two C-ROM bitplane
streams, fix layer graphics into the S-ROM, and audio into
ADPCM-encoded V-ROM data with the address tables the Z80 sound driver
reads.

Compilation is a single ordered pass. Tile indices, palette indices
and audio byte addresses are handed out from monotonic counters and
later assets reference the counter values of earlier ones, so
processing order is part of the output format.
*/
package ngres

import (
	"bytes"
	"log"

	"github.com/bodgit/ngres/palette"
)

const (
	// tileStart is the first tile available to user assets. Tiles
	// 0-255 belong to the system, 256-319 to the eyecatcher bank.
	tileStart = 320

	// eyecatcherTile is the first tile of the eyecatcher bank.
	eyecatcherTile = 256

	// maxHeight is the tallest source image the sprite hardware
	// can address.
	maxHeight = 512
)

// Compiler drives one compilation run. It owns the palette registry,
// the tile and audio address counters and the output plane buffers
// for the duration of the pass.
type Compiler struct {
	logger *log.Logger
	cache  *Cache

	registry *palette.Registry
	baseTile int

	c1, c2, s1, v1 bytes.Buffer
	audioOffset    int
}

// New returns a Compiler logging warnings and progress to logger.
func New(logger *log.Logger) *Compiler {
	return &Compiler{
		logger:   logger,
		registry: palette.NewRegistry(),
		baseTile: tileStart,
	}
}

// UseCache attaches an encode cache; previously encoded audio whose
// source file is unchanged is reused instead of re-encoded.
func (c *Compiler) UseCache(cache *Cache) {
	c.cache = cache
}
