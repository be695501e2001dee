package gosaxlex

import "github.com/klauspost/cpuid/v2"

var canUseSSE = cpuid.CPU.Has(cpuid.SSE2) && cpuid.CPU.Has(cpuid.BMI1)
var canUseAVX2 = canUseSSE && cpuid.CPU.Has(cpuid.AVX2)

// indexOpenAngleSSE2 searches the leading full blocks of 8 units for '<'
// and returns its index, or -1. The remaining len(u)%8 units are not read.
//
//go:noescape
func indexOpenAngleSSE2(u []uint16) int

// indexOpenAngleAVX2 is indexOpenAngleSSE2 on blocks of 16 units.
//
//go:noescape
func indexOpenAngleAVX2(u []uint16) int

func indexOpenAngle(u []uint16) int {
	if canUseAVX2 {
		return indexOpenAngleBlocks(u, indexOpenAngleAVX2, 16)
	} else if canUseSSE {
		return indexOpenAngleBlocks(u, indexOpenAngleSSE2, 8)
	}
	return indexOpenAngleSWAR(u)
}

func indexOpenAngleBlocks(u []uint16, blocks func([]uint16) int, width int) int {
	if i := blocks(u); i >= 0 {
		return i
	}
	tail := len(u) &^ (width - 1)
	if i := indexOpenAngleGeneric(u[tail:]); i >= 0 {
		return tail + i
	}
	return -1
}
