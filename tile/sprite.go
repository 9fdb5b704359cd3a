package tile

// quadrants lists the four 8x8 blocks of a sprite tile in C-ROM
// storage order: top-left, bottom-left, top-right, bottom-right.
var quadrants = [4][2]int{
	{0, 0},
	{0, 8},
	{8, 0},
	{8, 8},
}

// Sprite encodes a 16x16 tile into its two C-ROM planes. Each plane
// holds two bytes per quadrant row: C1 carries bitplanes 0 and 1, C2
// carries bitplanes 2 and 3. Within a byte, bit 0 is the rightmost
// pixel of the row.
func Sprite(px *SpritePixels) (c1, c2 [SpriteBytes]byte) {
	i := 0
	for _, q := range quadrants {
		qx, qy := q[0], q[1]
		for row := 0; row < 8; row++ {
			var bp0, bp1, bp2, bp3 byte
			for col := 0; col < 8; col++ {
				p := px[qy+row][qx+7-col]
				bp0 |= (p >> 0 & 1) << col
				bp1 |= (p >> 1 & 1) << col
				bp2 |= (p >> 2 & 1) << col
				bp3 |= (p >> 3 & 1) << col
			}
			c1[i], c1[i+1] = bp0, bp1
			c2[i], c2[i+1] = bp2, bp3
			i += 2
		}
	}
	return
}
