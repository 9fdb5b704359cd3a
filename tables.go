package ngres

const (
	sfxRecordSize   = 4
	musicRecordSize = 6
	sfxTableSize    = maxAudioAssets * sfxRecordSize
	musicTableSize  = maxAudioAssets * musicRecordSize
)

// sampleTables lays out the two address tables the Z80 sound driver
// reads at a fixed M-ROM offset: 32 four-byte sound effect records
// followed by 32 six-byte music records. Addresses are little-endian
// pairs in 256-byte units; music records append the delta-N ratio.
func sampleTables(sfx, music []*AudioAsset) []byte {
	out := make([]byte, sfxTableSize+musicTableSize)

	for _, a := range sfx {
		if a.Index >= maxAudioAssets {
			continue
		}
		o := a.Index * sfxRecordSize
		out[o] = byte(a.StartAddr)
		out[o+1] = byte(a.StartAddr >> 8)
		out[o+2] = byte(a.StopAddr)
		out[o+3] = byte(a.StopAddr >> 8)
	}

	for _, a := range music {
		if a.Index >= maxAudioAssets {
			continue
		}
		o := sfxTableSize + a.Index*musicRecordSize
		out[o] = byte(a.StartAddr)
		out[o+1] = byte(a.StartAddr >> 8)
		out[o+2] = byte(a.StopAddr)
		out[o+3] = byte(a.StopAddr >> 8)
		out[o+4] = byte(a.DeltaN)
		out[o+5] = byte(a.DeltaN >> 8)
	}

	return out
}
