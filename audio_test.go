package ngres

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, samples []int, rate, bitDepth, channels int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	e := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, e.Write(buf))
	require.NoError(t, e.Close())
}

func TestLoadWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mono.wav")

	want := []int16{0, 1000, -1000, 32767, -32768}
	writeWAV(t, path, []int{0, 1000, -1000, 32767, -32768}, 22050, 16, 1)

	samples, rate, err := loadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, rate)
	assert.Equal(t, want, samples)
}

func TestLoadWAVStereo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stereo.wav")

	// Interleaved L/R pairs average down to mono.
	writeWAV(t, path, []int{100, 300, -100, -300}, 44100, 16, 2)

	samples, rate, err := loadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, rate)
	assert.Equal(t, []int16{200, -200}, samples)
}

func TestCompileSoundEffect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jump.wav")
	writeWAV(t, path, make([]int, 1000), 18500, 16, 1)

	cfg := &Config{
		SoundEffects: []SoundDef{{Name: "jump", Source: path}},
	}

	out, err := testCompiler().Compile(cfg)
	require.NoError(t, err)

	require.Len(t, out.SFX, 1)
	sfx := out.SFX[0]
	assert.Equal(t, "jump", sfx.Name)
	assert.Equal(t, 0, sfx.Index)
	assert.Equal(t, uint16(0), sfx.StartAddr)
	// 1000 samples pad to 1024, packing to 512 bytes.
	assert.Equal(t, 512, sfx.Size)
	assert.Equal(t, uint16(1), sfx.StopAddr)

	assert.Len(t, out.V1, minVSize)
	assert.Len(t, out.Tables, sfxTableSize+musicTableSize)
}

func TestCompileMusicDeltaN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.wav")
	writeWAV(t, path, make([]int, 512), 22050, 16, 1)

	cfg := &Config{
		Music: []MusicDef{{Name: "theme", Source: path}},
	}

	out, err := testCompiler().Compile(cfg)
	require.NoError(t, err)

	require.Len(t, out.Music, 1)
	m := out.Music[0]
	assert.Equal(t, 22050, m.SampleRate)
	assert.NotZero(t, m.DeltaN)
}

func TestCache(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	data, err := cache.Get("CBF43926", "adpcm-a", 18500)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, cache.Put("CBF43926", "adpcm-a", 18500, []byte{1, 2, 3}))

	data, err = cache.Get("CBF43926", "adpcm-a", 18500)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	// Same source, different parameters, separate entries.
	data, err = cache.Get("CBF43926", "adpcm-b", 18500)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, cache.Put("CBF43926", "adpcm-a", 18500, []byte{4, 5, 6}))
	data, err = cache.Get("CBF43926", "adpcm-a", 18500)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6}, data)
}

func TestEncodeAudioFileCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hit.wav")
	writeWAV(t, path, make([]int, 512), 18500, 16, 1)

	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	c := testCompiler()
	c.UseCache(cache)

	first, err := c.encodeAudioFile("hit", path, "adpcm-a", 18500)
	require.NoError(t, err)

	// The encoding is now cached under the file's CRC.
	crc, err := crcFile(path)
	require.NoError(t, err)
	cached, err := cache.Get(crc, "adpcm-a", 18500)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	second, err := c.encodeAudioFile("hit", path, "adpcm-a", 18500)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCRCFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("123456789"), 0644))

	crc, err := crcFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CBF43926", crc)
}
