package chart

import (
	"math"
	"strconv"
)

// GainUnitLabel is drawn in place of the topmost gain level
const GainUnitLabel = "dB"

// FormatFrequency renders a frequency axis label: thousands as "K", the
// 20 Hz boundary with its unit, everything else as a plain integer.
func FormatFrequency(v float64) string {
	n := int64(math.Floor(v + 0.5))
	switch {
	case n >= 1000:
		return strconv.FormatInt(n/1000, 10) + "K"
	case n == 20:
		return "20 Hz"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatGain renders the label of the gain level at index i of n levels.
// The top level carries the unit, the bottom level is left blank.
func FormatGain(level float64, i, n int) string {
	switch i {
	case 0:
		return GainUnitLabel
	case n - 1:
		return ""
	}
	return strconv.FormatInt(int64(math.Floor(level+0.5)), 10)
}
