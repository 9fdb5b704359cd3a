package ngres

import (
	"github.com/bodgit/ngres/tmx"
)

// TilemapAsset is one extracted tile grid: per-cell tile indices,
// optional per-cell collision flags and the 256-entry tile-to-palette
// lookup the raster code uses.
type TilemapAsset struct {
	Name           string
	WidthTiles     int
	HeightTiles    int
	BaseTile       int
	Tiles          []byte
	Collision      []byte
	TileToPalette  [256]byte
	DefaultPalette int
}

func (c *Compiler) tilemapAsset(def *TilemapDef, visual []*VisualAsset) (*TilemapAsset, error) {
	if def.Name == "" {
		return nil, &Error{Msg: "tilemap missing 'name' field"}
	}
	if def.Source == "" {
		return nil, errorf(def.Name, "missing 'source' field")
	}

	m, err := tmx.ParseFile(def.Source, def.Layer)
	if err != nil {
		return nil, errorf(def.Name, "%s: %v", def.Source, err)
	}

	baseTile := 0
	if def.Tileset != "" {
		found := false
		for _, a := range visual {
			if a.Name == def.Tileset {
				baseTile, found = a.BaseTile, true
				break
			}
		}
		if !found {
			return nil, errorf(def.Name, "references unknown tileset '%s'", def.Tileset)
		}
	}

	asset := &TilemapAsset{
		Name:           def.Name,
		WidthTiles:     m.Width,
		HeightTiles:    m.Height,
		BaseTile:       baseTile,
		Tiles:          m.Tiles,
		Collision:      m.Collision,
		DefaultPalette: def.DefaultPalette,
	}

	for i := range asset.TileToPalette {
		asset.TileToPalette[i] = byte(def.DefaultPalette)
	}
	for _, pr := range def.TilesetPalettes {
		if len(pr.Tiles) != 2 {
			continue
		}
		for i := pr.Tiles[0]; i <= pr.Tiles[1] && i < len(asset.TileToPalette); i++ {
			if i >= 0 {
				asset.TileToPalette[i] = byte(pr.Palette)
			}
		}
	}

	// Manifest collision overrides replace any flags extracted from
	// the TMX tile properties; they do not merge.
	if len(def.Collision) > 0 {
		override := make(map[int]byte)
		for kind, tiles := range def.Collision {
			flag, ok := tmx.PropertyFlag(kind)
			if !ok {
				continue
			}
			for _, id := range tiles {
				override[id] |= flag
			}
		}
		if len(override) > 0 {
			collision := make([]byte, len(asset.Tiles))
			for i, id := range asset.Tiles {
				collision[i] = override[int(id)]
			}
			asset.Collision = collision
		}
	}

	return asset, nil
}
