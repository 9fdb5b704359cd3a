package ngres

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the asset manifest. Mapping sections keep their manifest
// order because asset order decides tile, palette and audio address
// assignment.
type Config struct {
	Palettes     PaletteDefs      `yaml:"palettes"`
	VisualAssets []VisualAssetDef `yaml:"visual_assets"`
	FixAssets    []FixAssetDef    `yaml:"fix_assets"`
	SoundEffects []SoundDef       `yaml:"sound_effects"`
	Music        []MusicDef       `yaml:"music"`
	Tilemaps     []TilemapDef     `yaml:"tilemaps"`
	Eyecatcher   *EyecatcherDef   `yaml:"eyecatcher"`
}

// PaletteDef is an explicit palette: either manual colors already in
// hardware format, or an image to extract a palette from.
type PaletteDef struct {
	Colors []uint16 `yaml:"colors"`
	Source string   `yaml:"source"`
}

// NamedPalette pairs a palette definition with its manifest key.
type NamedPalette struct {
	Name string
	PaletteDef
}

// PaletteDefs preserves the manifest's palette order.
type PaletteDefs []NamedPalette

func (p *PaletteDefs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("palettes must be a mapping")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var np NamedPalette
		if err := value.Content[i].Decode(&np.Name); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&np.PaletteDef); err != nil {
			return err
		}
		*p = append(*p, np)
	}
	return nil
}

// VisualAssetDef describes one sprite image or sheet.
type VisualAssetDef struct {
	Name       string     `yaml:"name"`
	Source     string     `yaml:"source"`
	FrameSize  []int      `yaml:"frame_size"`
	Palette    PaletteRef `yaml:"palette"`
	Quantize   bool       `yaml:"quantize"`
	Animations Animations `yaml:"animations"`
}

// FixAssetDef describes one fix layer image.
type FixAssetDef struct {
	Name    string     `yaml:"name"`
	Source  string     `yaml:"source"`
	Palette PaletteRef `yaml:"palette"`
}

// SoundDef describes one ADPCM-A sound effect.
type SoundDef struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// MusicDef describes one ADPCM-B track.
type MusicDef struct {
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	SampleRate int    `yaml:"sample_rate"`
}

// TilemapDef describes one TMX tilemap extraction.
type TilemapDef struct {
	Name            string              `yaml:"name"`
	Source          string              `yaml:"source"`
	Layer           string              `yaml:"layer"`
	Tileset         string              `yaml:"tileset"`
	TilesetPalettes []TilesetPaletteDef `yaml:"tileset_palettes"`
	DefaultPalette  int                 `yaml:"default_palette"`
	Collision       map[string][]int    `yaml:"collision"`
}

// TilesetPaletteDef maps an inclusive tile index range to a palette.
type TilesetPaletteDef struct {
	Tiles   []int `yaml:"tiles"`
	Palette int   `yaml:"palette"`
}

// EyecatcherDef points at pre-encoded eyecatcher tile blobs loaded
// into the reserved bank.
type EyecatcherDef struct {
	C1 string `yaml:"c1"`
	C2 string `yaml:"c2"`
}

type paletteRefKind int

const (
	refAuto paletteRefKind = iota
	refNamed
	refIndexed
)

// PaletteRef is a manifest palette reference: a palette name, an
// explicit hardware index, or absent to auto-generate a palette from
// the asset itself.
type PaletteRef struct {
	kind  paletteRefKind
	Name  string
	Index int
}

func (r *PaletteRef) UnmarshalYAML(value *yaml.Node) error {
	var i int
	if err := value.Decode(&i); err == nil {
		r.kind, r.Index = refIndexed, i
		return nil
	}
	var s string
	if err := value.Decode(&s); err == nil {
		r.kind, r.Name = refNamed, s
		return nil
	}
	return fmt.Errorf("palette must be a palette name or an index")
}

// AnimationDef is one resolved animation of a visual asset.
type AnimationDef struct {
	Name   string
	Frames []int
	Speed  int
	Loop   bool
}

// Animations preserves the manifest's animation order, since
// generated animation indices follow it.
type Animations []AnimationDef

func (a *Animations) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("animations must be a mapping")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var def AnimationDef
		if err := value.Content[i].Decode(&def.Name); err != nil {
			return err
		}

		spec := value.Content[i+1]
		if spec.Kind == yaml.ScalarNode {
			frames, err := parseFrameScalar(spec.Value)
			if err != nil {
				return fmt.Errorf("animation %q: %w", def.Name, err)
			}
			def.Frames, def.Speed, def.Loop = frames, 4, true
			*a = append(*a, def)
			continue
		}

		var raw struct {
			Frame  *int       `yaml:"frame"`
			Frames *FrameSpec `yaml:"frames"`
			Speed  *int       `yaml:"speed"`
			Loop   *bool      `yaml:"loop"`
		}
		if err := spec.Decode(&raw); err != nil {
			return fmt.Errorf("animation %q: %w", def.Name, err)
		}

		switch {
		case raw.Frame != nil:
			def.Frames = []int{*raw.Frame}
		case raw.Frames != nil:
			def.Frames = *raw.Frames
		default:
			return fmt.Errorf("animation %q: missing 'frame' or 'frames'", def.Name)
		}

		def.Speed, def.Loop = 4, true
		if raw.Speed != nil {
			def.Speed = *raw.Speed
		}
		if raw.Loop != nil {
			def.Loop = *raw.Loop
		}
		*a = append(*a, def)
	}
	return nil
}

// FrameSpec is a frame list in any of the manifest shapes: a single
// index, an "a-b" range string, or a list mixing both.
type FrameSpec []int

func (f *FrameSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		frames, err := parseFrameScalar(value.Value)
		if err != nil {
			return err
		}
		*f = frames
		return nil
	case yaml.SequenceNode:
		for _, item := range value.Content {
			frames, err := parseFrameScalar(item.Value)
			if err != nil {
				return err
			}
			*f = append(*f, frames...)
		}
		return nil
	}
	return fmt.Errorf("invalid frame specification")
}

var frameRange = regexp.MustCompile(`^(\d+)-(\d+)$`)

func parseFrameScalar(s string) ([]int, error) {
	if m := frameRange.FindStringSubmatch(s); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if start > end {
			return nil, fmt.Errorf("invalid frame range %q: start (%d) > end (%d)", s, start, end)
		}
		frames := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			frames = append(frames, i)
		}
		return frames, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid frame specification %q", s)
	}
	return []int{n}, nil
}

// LoadConfig reads a manifest and resolves every source path against
// the manifest's directory, so configs from different directories can
// be merged.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Palettes {
		resolve(dir, &cfg.Palettes[i].Source)
	}
	for i := range cfg.VisualAssets {
		resolve(dir, &cfg.VisualAssets[i].Source)
	}
	for i := range cfg.FixAssets {
		resolve(dir, &cfg.FixAssets[i].Source)
	}
	for i := range cfg.SoundEffects {
		resolve(dir, &cfg.SoundEffects[i].Source)
	}
	for i := range cfg.Music {
		resolve(dir, &cfg.Music[i].Source)
	}
	for i := range cfg.Tilemaps {
		resolve(dir, &cfg.Tilemaps[i].Source)
	}
	if cfg.Eyecatcher != nil {
		resolve(dir, &cfg.Eyecatcher.C1)
		resolve(dir, &cfg.Eyecatcher.C2)
	}

	return &cfg, nil
}

func resolve(dir string, path *string) {
	if *path != "" && !filepath.IsAbs(*path) {
		*path = filepath.Join(dir, *path)
	}
}

// Merge appends extra onto base. Base assets are processed first, so
// SDK manifests belong in base; a palette name defined in both keeps
// base's position but takes extra's definition.
func Merge(base, extra *Config) *Config {
	merged := &Config{}

	merged.Palettes = append(merged.Palettes, base.Palettes...)
	for _, np := range extra.Palettes {
		replaced := false
		for i := range merged.Palettes {
			if merged.Palettes[i].Name == np.Name {
				merged.Palettes[i] = np
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Palettes = append(merged.Palettes, np)
		}
	}

	merged.VisualAssets = append(append(merged.VisualAssets, base.VisualAssets...), extra.VisualAssets...)
	merged.FixAssets = append(append(merged.FixAssets, base.FixAssets...), extra.FixAssets...)
	merged.SoundEffects = append(append(merged.SoundEffects, base.SoundEffects...), extra.SoundEffects...)
	merged.Music = append(append(merged.Music, base.Music...), extra.Music...)
	merged.Tilemaps = append(append(merged.Tilemaps, base.Tilemaps...), extra.Tilemaps...)

	merged.Eyecatcher = base.Eyecatcher
	if extra.Eyecatcher != nil {
		merged.Eyecatcher = extra.Eyecatcher
	}

	return merged
}
