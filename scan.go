package gosaxlex

import "math/bits"

// lane constants for four 16-bit code units packed into one uint64
const (
	lanesOne       = 0x0001000100010001
	lanesHigh      = 0x8000800080008000
	lanesOpenAngle = 0x003C003C003C003C
)

// indexOpenAngleGeneric returns the index of the first '<' in u, or -1.
func indexOpenAngleGeneric(u []uint16) int {
	for i, c := range u {
		if c == '<' {
			return i
		}
	}
	return -1
}

// indexOpenAngleSWAR is indexOpenAngleGeneric testing four units per step.
// Only the lowest flagged lane of the zero-lane test is exact.
func indexOpenAngleSWAR(u []uint16) int {
	i := 0
	for ; i+4 <= len(u); i += 4 {
		w := uint64(u[i]) | uint64(u[i+1])<<16 | uint64(u[i+2])<<32 | uint64(u[i+3])<<48
		x := w ^ lanesOpenAngle
		m := (x - lanesOne) &^ x & lanesHigh
		if m != 0 {
			return i + bits.TrailingZeros64(m)/16
		}
	}
	for ; i < len(u); i++ {
		if u[i] == '<' {
			return i
		}
	}
	return -1
}
