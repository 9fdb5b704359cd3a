/*
Package tile implements the NeoGeo tile encoders.

Sprite tiles are 16 by 16 pixels of 4-bit palette indices split across
two physical ROM planes (C1 and C2) of 64 bytes each. The hardware
interleaves the two planes byte by byte at load time to recover the
four bitplanes of each pixel row, so the exact byte order produced
here is load-bearing.

Fix layer tiles are 8 by 8 pixels stored in a single 32-byte plane
with two packed pixels per byte; the fix layer does not use bitplanes.
*/
package tile

const (
	// SpriteSize is the edge length in pixels of a sprite tile.
	SpriteSize = 16

	// SpriteBytes is the size of one sprite tile in one C-ROM
	// plane; a tile occupies this many bytes in C1 and again in C2.
	SpriteBytes = 64

	// FixSize is the edge length in pixels of a fix layer tile.
	FixSize = 8

	// FixBytes is the size of one fix layer tile in the S-ROM.
	FixBytes = 32

	// HFlip is set on every tilemap entry; sprite tile references
	// in this asset format are horizontally flipped by convention.
	HFlip = 0x8000
)

// SpritePixels is a sprite tile as row-major palette indices;
// [y][x], row 0 at the top.
type SpritePixels [SpriteSize][SpriteSize]uint8

// FixPixels is a fix layer tile as row-major palette indices.
type FixPixels [FixSize][FixSize]uint8
