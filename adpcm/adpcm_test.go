package adpcm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackOrder(t *testing.T) {
	assert.Equal(t, []byte{0xab}, Pack([]byte{0x0a, 0x0b}))
	assert.Equal(t, []byte{0x12, 0x34}, Pack([]byte{1, 2, 3, 4}))
	assert.Equal(t, []byte{0x12, 0x30}, Pack([]byte{1, 2, 3}))
}

func TestPackUnpackRoundTrip(t *testing.T) {
	codes := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0xa, 0xb, 0xc, 0xd, 0xe, 0xf}
	assert.Equal(t, codes, Unpack(Pack(codes)))

	packed := []byte{0xde, 0xad, 0xbe, 0xef}
	assert.Equal(t, packed, Pack(Unpack(packed)))
}

func TestEncodeAPadding(t *testing.T) {
	tests := []struct {
		samples int
		bytes   int
	}{
		{0, 0},
		{1, 256},
		{512, 256},
		{513, 512},
		{1024, 512},
	}

	for _, tt := range tests {
		assert.Len(t, EncodeA(make([]int16, tt.samples)), tt.bytes)
	}
}

func TestEncodeBPadding(t *testing.T) {
	assert.Len(t, EncodeB(make([]int16, 100)), 256)
	assert.Len(t, EncodeB(make([]int16, 1000)), 512)
}

func TestEncodeASilence(t *testing.T) {
	// Around zero the coder hunts: +step/8, then back. The codes
	// alternate 0 and 8, packing to a constant byte.
	got := EncodeA(make([]int16, 512))
	assert.Equal(t, bytes.Repeat([]byte{0x08}, 256), got)
}

func TestEncodeBSilence(t *testing.T) {
	got := EncodeB(make([]int16, 512))
	assert.Equal(t, bytes.Repeat([]byte{0x08}, 256), got)
}

func TestCodecAStaysInRange(t *testing.T) {
	var c codecA
	// Slam the coder between the rails; the decoded predictor must
	// never leave the 12-bit range.
	for i := 0; i < 4096; i++ {
		s := 2047
		if i&1 != 0 {
			s = -2048
		}
		c.encode(s)
		assert.GreaterOrEqual(t, c.predicted, -2048)
		assert.LessOrEqual(t, c.predicted, 2047)
		assert.GreaterOrEqual(t, c.stepIndex, 0)
		assert.LessOrEqual(t, c.stepIndex, len(stepSizeA)-1)
	}
}

func TestCodecBStaysInRange(t *testing.T) {
	c := codecB{step: stepInitB}
	for i := 0; i < 4096; i++ {
		s := 32767
		if i&1 != 0 {
			s = -32768
		}
		c.encode(s)
		assert.GreaterOrEqual(t, c.predicted, -32768)
		assert.LessOrEqual(t, c.predicted, 32767)
		assert.GreaterOrEqual(t, c.step, stepMinB)
		assert.LessOrEqual(t, c.step, stepMaxB)
	}
}

func TestCodecATracksRamp(t *testing.T) {
	// A slow ramp is the codec's best case; the predictor should
	// stay close to the input.
	var c codecA
	for s := -1000; s <= 1000; s += 4 {
		c.encode(s)
	}
	assert.InDelta(t, 1000, c.predicted, 64)
}

func TestDeltaN(t *testing.T) {
	assert.Equal(t, uint16(0), DeltaN(0))
	assert.Equal(t, uint16(0xffff), DeltaN(55555))
	assert.Equal(t, uint16(0xffff), DeltaN(111110))
	assert.Less(t, DeltaN(18500), DeltaN(22050))
}

func TestResample(t *testing.T) {
	in := []int16{0, 100}

	same := Resample(in, 22050, 22050)
	assert.Equal(t, in, same)

	up := Resample(in, 1, 2)
	assert.Equal(t, []int16{0, 50, 100, 100}, up)

	down := Resample([]int16{0, 50, 100, 150}, 2, 1)
	assert.Equal(t, []int16{0, 100}, down)
}
