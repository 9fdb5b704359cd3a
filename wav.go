package ngres

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// loadWAV decodes a WAV file to mono signed 16-bit PCM and its native
// sample rate. 8, 16, 24 and 32 bit widths are normalized to 16 bits;
// stereo is averaged down to mono.
func loadWAV(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	samples := make([]int16, len(buf.Data))
	switch d.BitDepth {
	case 8:
		// 8-bit WAV data is unsigned.
		for i, s := range buf.Data {
			samples[i] = int16((s - 128) << 8)
		}
	case 16:
		for i, s := range buf.Data {
			samples[i] = int16(s)
		}
	case 24:
		for i, s := range buf.Data {
			samples[i] = int16(s >> 8)
		}
	case 32:
		for i, s := range buf.Data {
			samples[i] = int16(s >> 16)
		}
	default:
		return nil, 0, &Error{Msg: fmt.Sprintf("%s: unsupported sample width: %d bits", path, d.BitDepth)}
	}

	if buf.Format.NumChannels == 2 {
		mono := make([]int16, 0, len(samples)/2)
		for i := 0; i+1 < len(samples); i += 2 {
			mono = append(mono, int16((int(samples[i])+int(samples[i+1]))/2))
		}
		samples = mono
	}

	return samples, buf.Format.SampleRate, nil
}
