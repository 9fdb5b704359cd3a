package ngres

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bodgit/ngres/palette"
)

// Header renders the generated C header with every asset definition
// the SDK consumes: palette constants and data, visual asset structs
// with their animations and tilemaps, audio indices and tilemap data
// tables.
func (o *Output) Header() []byte {
	b := new(bytes.Buffer)

	fmt.Fprintln(b, "// ngres_generated_assets.h - Generated by ngres")
	fmt.Fprintln(b, "// DO NOT EDIT - This file is auto-generated from the asset manifest")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "#ifndef _NGRES_GENERATED_ASSETS_H_")
	fmt.Fprintln(b, "#define _NGRES_GENERATED_ASSETS_H_")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "#include <visual.h>")
	fmt.Fprintln(b, "#include <palette.h>")
	fmt.Fprintln(b, "#include <audio.h>")
	fmt.Fprintln(b, "#include <tilemap.h>")
	fmt.Fprintln(b)

	if len(o.Palettes) > 0 {
		fmt.Fprintln(b, "// === Palette Index Constants ===")
		for _, e := range o.Palettes {
			fmt.Fprintf(b, "#define NGPAL_%s %d\n", strings.ToUpper(e.Name), e.Index)
		}
		fmt.Fprintln(b)

		fmt.Fprintln(b, "// === Palette Data ===")
		for _, e := range o.Palettes {
			fmt.Fprintf(b, "static const u16 NGPal_%s[%d] = {\n    ", e.Name, palette.Size)
			for _, v := range e.Palette.Hardware() {
				fmt.Fprintf(b, "0x%04X, ", v)
			}
			fmt.Fprintln(b, "\n};")
			fmt.Fprintln(b)
		}
	}

	fmt.Fprintln(b, "// === Visual Assets ===")
	fmt.Fprintln(b)
	for _, a := range o.Visual {
		upper := strings.ToUpper(a.Name)

		if len(a.Animations) > 0 {
			fmt.Fprintf(b, "// Animation indices for %s\n", a.Name)
			fmt.Fprintln(b, "enum {")
			for i, anim := range a.Animations {
				fmt.Fprintf(b, "    NG_ANIM_%s_%s = %d,\n", upper, strings.ToUpper(anim.Name), i)
			}
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)

			fmt.Fprintf(b, "static const NGAnimDef _%s_anims[] = {\n", a.Name)
			for _, anim := range a.Animations {
				loop := 0
				if anim.Loop {
					loop = 1
				}
				fmt.Fprintf(b, "    { \"%s\", %d, %d, %d, %d },\n",
					anim.Name, anim.FirstFrame, anim.FrameCount, anim.Speed, loop)
			}
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)
		}

		// Only the first frame's tilemap is emitted; later frames
		// repeat it at a fixed tile stride.
		fmt.Fprintf(b, "static const u16 _%s_tilemap[] = {\n", a.Name)
		n := a.TilesPerFrame
		if n > len(a.Tilemap) {
			n = len(a.Tilemap)
		}
		writeRows(b, n, 16, func(i int) string { return fmt.Sprintf("0x%04X", a.Tilemap[i]) })
		fmt.Fprintln(b, "};")
		fmt.Fprintln(b)

		fmt.Fprintf(b, "static const NGVisualAsset NGVisualAsset_%s = {\n", a.Name)
		fmt.Fprintf(b, "    .name = \"%s\",\n", a.Name)
		fmt.Fprintf(b, "    .base_tile = %d,\n", a.BaseTile)
		fmt.Fprintf(b, "    .width_pixels = %d,\n", a.WidthPixels)
		fmt.Fprintf(b, "    .height_pixels = %d,\n", a.HeightPixels)
		fmt.Fprintf(b, "    .width_tiles = %d,\n", a.WidthTiles)
		fmt.Fprintf(b, "    .height_tiles = %d,\n", a.HeightTiles)
		fmt.Fprintf(b, "    .tilemap = _%s_tilemap,\n", a.Name)
		fmt.Fprintf(b, "    .palette = NGPAL_%s,\n", strings.ToUpper(a.Palette.Name))
		fmt.Fprintf(b, "    .palette_data = NGPal_%s,\n", a.Palette.Name)
		if len(a.Animations) > 0 {
			fmt.Fprintf(b, "    .anims = _%s_anims,\n", a.Name)
			fmt.Fprintf(b, "    .anim_count = %d,\n", len(a.Animations))
		} else {
			fmt.Fprintln(b, "    .anims = 0,")
			fmt.Fprintln(b, "    .anim_count = 0,")
		}
		fmt.Fprintf(b, "    .frame_count = %d,\n", a.FrameCount)
		fmt.Fprintf(b, "    .tiles_per_frame = %d,\n", a.TilesPerFrame)
		fmt.Fprintln(b, "};")
		fmt.Fprintln(b)
	}

	if len(o.Palettes) > 0 {
		fmt.Fprintln(b, "// === Palette Initialization ===")
		fmt.Fprintln(b, "// Called automatically by NGEngineInit() to load all asset palettes")
		fmt.Fprintln(b, "__attribute__((weak)) void NGPalInitAssets(void) {")
		for _, e := range o.Palettes {
			fmt.Fprintf(b, "    NGPalSet(NGPAL_%s, NGPal_%s);\n", strings.ToUpper(e.Name), e.Name)
		}
		fmt.Fprintln(b, "}")
		fmt.Fprintln(b)
	}

	if len(o.SFX) > 0 {
		fmt.Fprintln(b, "// === Sound Effects ===")
		fmt.Fprintln(b)
		for _, a := range o.SFX {
			fmt.Fprintf(b, "#define NGSFX_%s %d\n", strings.ToUpper(a.Name), a.Index)
		}
		fmt.Fprintln(b)
		for _, a := range o.SFX {
			fmt.Fprintf(b, "static const NGSfxAsset NGSfxAsset_%s = {\n", a.Name)
			fmt.Fprintf(b, "    .name = \"%s\",\n", a.Name)
			fmt.Fprintf(b, "    .index = %d,\n", a.Index)
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)
		}
	}

	if len(o.Music) > 0 {
		fmt.Fprintln(b, "// === Music ===")
		fmt.Fprintln(b)
		for _, a := range o.Music {
			fmt.Fprintf(b, "#define NGMUSIC_%s %d\n", strings.ToUpper(a.Name), a.Index)
		}
		fmt.Fprintln(b)
		for _, a := range o.Music {
			fmt.Fprintf(b, "static const NGMusicAsset NGMusicAsset_%s = {\n", a.Name)
			fmt.Fprintf(b, "    .name = \"%s\",\n", a.Name)
			fmt.Fprintf(b, "    .index = %d,\n", a.Index)
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)
		}
	}

	if len(o.Tilemaps) > 0 {
		fmt.Fprintln(b, "// === Tilemaps ===")
		fmt.Fprintln(b)
		for _, tm := range o.Tilemaps {
			fmt.Fprintf(b, "static const u8 _%s_tile_data[] = {\n", tm.Name)
			writeRows(b, len(tm.Tiles), 32, func(i int) string { return fmt.Sprintf("0x%02X", tm.Tiles[i]) })
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)

			if len(tm.Collision) > 0 {
				fmt.Fprintf(b, "static const u8 _%s_collision_data[] = {\n", tm.Name)
				writeRows(b, len(tm.Collision), 32, func(i int) string { return fmt.Sprintf("0x%02X", tm.Collision[i]) })
				fmt.Fprintln(b, "};")
				fmt.Fprintln(b)
			}

			fmt.Fprintf(b, "static const u8 _%s_tile_to_palette[] = {\n", tm.Name)
			writeRows(b, len(tm.TileToPalette), 32, func(i int) string { return fmt.Sprintf("%d", tm.TileToPalette[i]) })
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)

			fmt.Fprintf(b, "static const NGTilemapAsset NGTilemapAsset_%s = {\n", tm.Name)
			fmt.Fprintf(b, "    .name = \"%s\",\n", tm.Name)
			fmt.Fprintf(b, "    .width_tiles = %d,\n", tm.WidthTiles)
			fmt.Fprintf(b, "    .height_tiles = %d,\n", tm.HeightTiles)
			fmt.Fprintf(b, "    .base_tile = %d,\n", tm.BaseTile)
			fmt.Fprintf(b, "    .tile_data = _%s_tile_data,\n", tm.Name)
			if len(tm.Collision) > 0 {
				fmt.Fprintf(b, "    .collision_data = _%s_collision_data,\n", tm.Name)
			} else {
				fmt.Fprintln(b, "    .collision_data = 0,")
			}
			fmt.Fprintf(b, "    .tile_to_palette = _%s_tile_to_palette,\n", tm.Name)
			fmt.Fprintf(b, "    .default_palette = %d,\n", tm.DefaultPalette)
			fmt.Fprintln(b, "};")
			fmt.Fprintln(b)
		}
	}

	fmt.Fprintln(b, "#endif // _NGRES_GENERATED_ASSETS_H_")

	return b.Bytes()
}

func writeRows(b *bytes.Buffer, n, perRow int, format func(int) string) {
	for i := 0; i < n; i += perRow {
		b.WriteString("    ")
		for j := i; j < i+perRow && j < n; j++ {
			b.WriteString(format(j))
			b.WriteString(", ")
		}
		b.WriteString("\n")
	}
}
