//go:build !amd64

package gosaxlex

func indexOpenAngle(u []uint16) int {
	return indexOpenAngleSWAR(u)
}
