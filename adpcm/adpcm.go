/*
Package adpcm implements the two 4-bit ADPCM encoders used by the
YM2610 sound chip.

ADPCM-A carries short samples at a fixed 18.5kHz rate with 12-bit
precision and an adaptive step size chosen from a fixed table.
ADPCM-B carries a single long sample at a configurable rate with
16-bit precision and a multiplicative step adaptation.

There is no independent decoder in the toolchain; the chip is the
decoder. Both encoders therefore replay their own decode of every
emitted code to advance the predictor, so the state they track is
bit-identical to what the hardware reconstructs.
*/
package adpcm

const (
	// RateA is the fixed ADPCM-A playback rate in Hz.
	RateA = 18500

	// RateB is the default ADPCM-B playback rate in Hz.
	RateB = 22050

	// rateRef is the hardware reference rate the delta-N ratio is
	// computed against.
	rateRef = 55555

	// Streams are padded to a 512-sample boundary so the packed
	// output is always a multiple of 256 bytes, the unit the chip
	// addresses samples in.
	sampleAlign = 512
)

// Pack packs 4-bit codes two per byte, first code in the high nibble.
// The caller is expected to supply an even number of codes; a trailing
// odd code is packed against a zero low nibble.
func Pack(codes []byte) []byte {
	packed := make([]byte, 0, (len(codes)+1)>>1)
	for i := 0; i+1 < len(codes); i += 2 {
		packed = append(packed, codes[i]<<4|codes[i+1]&0x0f)
	}
	if len(codes)&1 != 0 {
		packed = append(packed, codes[len(codes)-1]<<4)
	}
	return packed
}

// Unpack is the inverse of Pack.
func Unpack(packed []byte) []byte {
	codes := make([]byte, 0, len(packed)<<1)
	for _, b := range packed {
		codes = append(codes, b>>4, b&0x0f)
	}
	return codes
}

// DeltaN returns the 16-bit delta-N ratio programming the ADPCM-B
// channel to play back at rate Hz relative to the hardware reference
// rate.
func DeltaN(rate int) uint16 {
	n := int(float64(rate) / rateRef * 65536)
	if n > 0xffff {
		n = 0xffff
	}
	return uint16(n)
}

// Resample converts samples from rate src to rate dst by linear
// interpolation. Anything fancier is wasted on a 4-bit codec.
func Resample(samples []int16, src, dst int) []int16 {
	if src == dst {
		return samples
	}

	ratio := float64(src) / float64(dst)
	out := make([]int16, int(float64(len(samples))/ratio))

	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		frac := pos - float64(j)

		var s int
		switch {
		case j+1 < len(samples):
			s = int(float64(samples[j])*(1-frac) + float64(samples[j+1])*frac)
		case j < len(samples):
			s = int(samples[j])
		}

		out[i] = int16(clamp(s, -32768, 32767))
	}

	return out
}

func pad(n int) int {
	return (n + sampleAlign - 1) / sampleAlign * sampleAlign
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
