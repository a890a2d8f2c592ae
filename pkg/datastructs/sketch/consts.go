package sketch

const (
	// cmDepth is the number of counter rows.
	cmDepth = 4

	// counterShift selects the high or low nibble of a packed byte.
	counterShift = 4

	// maxCount is the saturation value of a 4-bit counter.
	maxCount = 15

	// agingMask clears the carry bits left by the halving shift.
	agingMask = 0x77
)
