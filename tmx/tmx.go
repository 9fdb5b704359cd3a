/*
Package tmx extracts tile grids and collision flags from Tiled editor
TMX files.

Only the subset of the format this toolchain relies on is supported:
16 by 16 tiles, plain CSV layer encoding and boolean tile properties
drawn from a fixed collision vocabulary. Stored tile ids are
normalized against the tileset's firstgid so the output is zero-based,
with id 0 always meaning an empty cell.
*/
package tmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// tileSize is the only cell size the sprite hardware path supports.
const tileSize = 16

// Collision flag bits, one per entry of the tile property vocabulary.
const (
	Solid    byte = 0x01
	Platform byte = 0x02
	SlopeL   byte = 0x04
	SlopeR   byte = 0x08
	Hazard   byte = 0x10
	Trigger  byte = 0x20
	Ladder   byte = 0x40
)

var propertyFlags = map[string]byte{
	"solid":    Solid,
	"platform": Platform,
	"slope_l":  SlopeL,
	"slope_r":  SlopeR,
	"hazard":   Hazard,
	"trigger":  Trigger,
	"ladder":   Ladder,
}

// PropertyFlag returns the collision bit for a property name, or
// false if the name is outside the vocabulary.
func PropertyFlag(name string) (byte, bool) {
	f, ok := propertyFlags[strings.ToLower(name)]
	return f, ok
}

type xmlMap struct {
	XMLName    xml.Name     `xml:"map"`
	Width      int          `xml:"width,attr"`
	Height     int          `xml:"height,attr"`
	TileWidth  int          `xml:"tilewidth,attr"`
	TileHeight int          `xml:"tileheight,attr"`
	Tilesets   []xmlTileset `xml:"tileset"`
	Layers     []xmlLayer   `xml:"layer"`
}

type xmlTileset struct {
	FirstGID int       `xml:"firstgid,attr"`
	Tiles    []xmlTile `xml:"tile"`
}

type xmlTile struct {
	ID         int           `xml:"id,attr"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlLayer struct {
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   xmlData `xml:"data"`
}

type xmlData struct {
	Encoding string `xml:"encoding,attr"`
	Text     string `xml:",chardata"`
}

// Map is an extracted tile layer: zero-based tile indices clamped to
// a byte, and one collision flag byte per cell when any tile in the
// map's tilesets carries collision properties.
type Map struct {
	Width, Height int
	Tiles         []byte
	Collision     []byte
	FirstGID      int
}

// ParseFile reads and extracts the named layer from a TMX file. An
// empty layer name selects the first tile layer.
func ParseFile(path, layer string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, layer)
}

// Parse extracts the named layer from TMX data on r.
func Parse(r io.Reader, layer string) (*Map, error) {
	var doc xmlMap
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed TMX: %w", err)
	}

	tw, th := doc.TileWidth, doc.TileHeight
	if tw == 0 {
		tw = tileSize
	}
	if th == 0 {
		th = tileSize
	}
	if tw != tileSize || th != tileSize {
		return nil, fmt.Errorf("tile size must be %dx%d (got %dx%d)", tileSize, tileSize, tw, th)
	}

	firstGID := 1
	if len(doc.Tilesets) > 0 && doc.Tilesets[0].FirstGID != 0 {
		firstGID = doc.Tilesets[0].FirstGID
	}

	var selected *xmlLayer
	for i := range doc.Layers {
		if layer == "" || doc.Layers[i].Name == layer {
			selected = &doc.Layers[i]
			break
		}
	}
	if selected == nil {
		if layer != "" {
			return nil, fmt.Errorf("layer %q not found", layer)
		}
		return nil, fmt.Errorf("no tile layers found")
	}

	width, height := selected.Width, selected.Height
	if width == 0 {
		width = doc.Width
	}
	if height == 0 {
		height = doc.Height
	}

	encoding := selected.Data.Encoding
	if encoding == "" {
		encoding = "csv"
	}
	if encoding != "csv" {
		return nil, fmt.Errorf("only CSV layer encoding is supported (got %q)", encoding)
	}

	ids, err := parseCSV(selected.Data.Text, firstGID)
	if err != nil {
		return nil, err
	}
	if len(ids) != width*height {
		return nil, fmt.Errorf("expected %d cells, got %d", width*height, len(ids))
	}

	m := &Map{
		Width:    width,
		Height:   height,
		Tiles:    make([]byte, len(ids)),
		FirstGID: firstGID,
	}
	for i, id := range ids {
		m.Tiles[i] = clampByte(id)
	}

	if flags := collisionFlags(doc.Tilesets); len(flags) > 0 {
		m.Collision = make([]byte, len(ids))
		for i, id := range ids {
			m.Collision[i] = flags[id]
		}
	}

	return m, nil
}

// parseCSV decodes the layer cell text, normalizing stored ids
// against firstGID. A stored 0 is the empty cell regardless of the
// offset.
func parseCSV(text string, firstGID int) ([]int, error) {
	var ids []int
	for _, field := range strings.Split(strings.ReplaceAll(text, "\n", ","), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad cell value %q: %w", field, err)
		}
		if id != 0 {
			id -= firstGID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// collisionFlags gathers the collision bits of every tile, across all
// tilesets, that sets at least one vocabulary property to a truthy
// value.
func collisionFlags(tilesets []xmlTileset) map[int]byte {
	out := make(map[int]byte)
	for _, ts := range tilesets {
		for _, t := range ts.Tiles {
			var flags byte
			for _, p := range t.Properties {
				switch strings.ToLower(p.Value) {
				case "true", "1", "yes":
				default:
					continue
				}
				if f, ok := PropertyFlag(p.Name); ok {
					flags |= f
				}
			}
			if flags != 0 {
				out[t.ID] = flags
			}
		}
	}
	return out
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
