package ngres

import (
	"github.com/bodgit/ngres/adpcm"
)

const (
	// maxAudioAssets is the hard cap per audio class; the Z80
	// driver's tables have 32 slots each.
	maxAudioAssets = 32

	// addrUnit is the audio address granularity in bytes.
	addrUnit = 256

	// addrMax is the largest representable start or stop address.
	addrMax = 0xffff
)

// AudioAsset is one compiled ADPCM sample. Start and stop addresses
// are in 256-byte units within the V-ROM; DeltaN is only meaningful
// for ADPCM-B (music) assets.
type AudioAsset struct {
	Name       string
	Index      int
	StartAddr  uint16
	StopAddr   uint16
	DeltaN     uint16
	Size       int
	SampleRate int
}

// soundEffect encodes PCM at the fixed ADPCM-A rate and appends it to
// the audio plane.
func (c *Compiler) soundEffect(name string, data []byte, index int) (*AudioAsset, error) {
	return c.appendAudio(name, index, data, 0, adpcm.RateA)
}

// music appends pre-encoded ADPCM-B data with its delta-N rate
// parameter.
func (c *Compiler) music(name string, data []byte, rate, index int) (*AudioAsset, error) {
	return c.appendAudio(name, index, data, adpcm.DeltaN(rate), rate)
}

func (c *Compiler) appendAudio(name string, index int, data []byte, deltaN uint16, rate int) (*AudioAsset, error) {
	start := c.audioOffset / addrUnit
	stop := (c.audioOffset + len(data) - 1) / addrUnit

	if stop > addrMax {
		return nil, errorf(name, "exceeds V-ROM address limit: total audio data (%d bytes) exceeds 16MB",
			(stop+1)*addrUnit)
	}

	c.v1.Write(data)
	c.audioOffset += len(data)

	return &AudioAsset{
		Name:       name,
		Index:      index,
		StartAddr:  uint16(start),
		StopAddr:   uint16(stop),
		DeltaN:     deltaN,
		Size:       len(data),
		SampleRate: rate,
	}, nil
}

// encodeAudioFile loads, resamples and encodes one WAV source,
// consulting the encode cache first when one is attached.
func (c *Compiler) encodeAudioFile(name, path, kind string, rate int) ([]byte, error) {
	var crc string
	if c.cache != nil {
		var err error
		if crc, err = crcFile(path); err == nil {
			if data, err := c.cache.Get(crc, kind, rate); err == nil && data != nil {
				return data, nil
			}
		}
	}

	samples, srcRate, err := loadWAV(path)
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, errorf(name, "failed to load audio file %s: %v", path, err)
	}
	samples = adpcm.Resample(samples, srcRate, rate)

	var data []byte
	switch kind {
	case "adpcm-a":
		data = adpcm.EncodeA(samples)
	default:
		data = adpcm.EncodeB(samples)
	}

	if c.cache != nil && crc != "" {
		if err := c.cache.Put(crc, kind, rate, data); err != nil {
			c.logger.Printf("warning: cannot cache '%s': %v", name, err)
		}
	}

	return data, nil
}
