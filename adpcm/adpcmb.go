package adpcm

const (
	stepMinB  = 127
	stepMaxB  = 24576
	stepInitB = 127
)

// stepMulB scales the running step size after each code, indexed by
// the code's 3-bit magnitude. Values are fixed-point with a divisor
// of 64.
var stepMulB = [8]int{57, 57, 57, 57, 77, 102, 128, 153}

// codecB is the ADPCM-B codec state.
type codecB struct {
	predicted int // last decoded 16-bit sample
	step      int
}

// encode quantizes one 16-bit sample to a 4-bit code. Unlike ADPCM-A
// the magnitude is a straight ratio of the difference to the step,
// not a successive threshold walk.
func (c *codecB) encode(sample int) byte {
	diff := sample - c.predicted

	var sign byte
	mag := diff
	if mag < 0 {
		sign = 0x08
		mag = -mag
	}

	magnitude := (mag << 16) / (c.step << 14)
	if magnitude > 7 {
		magnitude = 7
	}

	code := sign | byte(magnitude)
	c.decode(code)
	return code
}

func (c *codecB) decode(code byte) int {
	magnitude := int(code & 0x07)

	diff := ((2*magnitude + 1) * c.step) >> 3
	if code&0x08 != 0 {
		diff = -diff
	}

	c.predicted = clamp(c.predicted+diff, -32768, 32767)
	c.step = clamp((c.step*stepMulB[magnitude])>>6, stepMinB, stepMaxB)
	return c.predicted
}

// EncodeB encodes signed 16-bit PCM into packed ADPCM-B codes. The
// playback rate is not part of the stream; it is programmed
// separately with the DeltaN ratio. The stream is zero-padded to a
// 512-sample boundary, so the result is always a multiple of 256
// bytes.
func EncodeB(samples []int16) []byte {
	codes := make([]byte, pad(len(samples)))

	c := codecB{step: stepInitB}
	for i, s := range samples {
		codes[i] = c.encode(int(s))
	}
	for i := len(samples); i < len(codes); i++ {
		codes[i] = c.encode(0)
	}

	return Pack(codes)
}
