package tile

// colPairs lists the column pairs of a fix tile in S-ROM storage
// order. Address bits within a tile are HCLLL: the right half of the
// tile is stored first, then the left half, outer pair before inner.
var colPairs = [4][2]int{
	{4, 5},
	{6, 7},
	{0, 1},
	{2, 3},
}

// Fix encodes an 8x8 fix layer tile into its 32 S-ROM bytes. Each
// byte packs two horizontally adjacent pixels, left pixel in the low
// nibble and right pixel in the high nibble.
func Fix(px *FixPixels) (out [FixBytes]byte) {
	for i, pair := range colPairs {
		for row := 0; row < FixSize; row++ {
			out[i*FixSize+row] = px[row][pair[0]]&0x0f | px[row][pair[1]]&0x0f<<4
		}
	}
	return
}
