package vm

import "strconv"

// formatNumber renders a number the way string-concatenation add needs
// it: the shortest round-trippable digits, integers without a trailing
// ".0". Magnitudes from 1e6 up or below 1e-4 use exponent notation
// ("1e+06").
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
