package adpcm

// stepSizeA is the ADPCM-A quantizer step table, indexed by the
// adaptive step index.
var stepSizeA = [49]int{
	16, 17, 19, 21, 23, 25, 28,
	31, 34, 37, 41, 45, 50, 55,
	60, 66, 73, 80, 88, 97, 107,
	118, 130, 143, 157, 173, 190, 209,
	230, 253, 279, 307, 337, 371, 408,
	449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552,
}

// stepAdjA adjusts the step index after each code, indexed by the
// code's 3-bit magnitude.
var stepAdjA = [8]int{-1, -1, -1, -1, 2, 5, 7, 9}

// codecA is the ADPCM-A codec state. The zero value is the reset
// state the chip starts every sample from.
type codecA struct {
	predicted int // last decoded 12-bit sample
	stepIndex int
}

// encode quantizes one 12-bit sample to a 4-bit code by successive
// thresholding against the current step, half of it and a quarter of
// it, then decodes its own output to advance the state.
func (c *codecA) encode(sample int) byte {
	diff := sample - c.predicted

	var sign byte
	if diff < 0 {
		sign = 0x08
		diff = -diff
	}

	var magnitude byte
	threshold := stepSizeA[c.stepIndex]
	if diff >= threshold {
		magnitude |= 0x04
		diff -= threshold
	}
	threshold >>= 1
	if diff >= threshold {
		magnitude |= 0x02
		diff -= threshold
	}
	threshold >>= 1
	if diff >= threshold {
		magnitude |= 0x01
	}

	code := sign | magnitude
	c.decode(code)
	return code
}

// decode reconstructs a code exactly as the chip does.
func (c *codecA) decode(code byte) int {
	step := stepSizeA[c.stepIndex]
	magnitude := int(code & 0x07)

	diff := ((2*magnitude + 1) * step) >> 3
	if code&0x08 != 0 {
		diff = -diff
	}

	c.predicted = clamp(c.predicted+diff, -2048, 2047)
	c.stepIndex = clamp(c.stepIndex+stepAdjA[magnitude], 0, len(stepSizeA)-1)
	return c.predicted
}

// EncodeA encodes signed 16-bit PCM at the fixed ADPCM-A rate into
// packed ADPCM-A codes. Samples are narrowed to the chip's 12-bit
// precision and the stream is zero-padded to a 512-sample boundary,
// so the result is always a multiple of 256 bytes.
func EncodeA(samples []int16) []byte {
	codes := make([]byte, pad(len(samples)))

	var c codecA
	for i, s := range samples {
		codes[i] = c.encode(int(s) >> 4)
	}
	for i := len(samples); i < len(codes); i++ {
		codes[i] = c.encode(0)
	}

	return Pack(codes)
}
