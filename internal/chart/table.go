package chart

import (
	"fmt"
	"math"
	"sort"
)

// FrequencyTable holds one frequency per horizontal pixel column, growing
// geometrically from the domain minimum.
type FrequencyTable []float64

// BuildFrequencyTable builds the log-scaled lookup table for a viewport of the given width
func BuildFrequencyTable(pixelWidth int, d Domain) (FrequencyTable, error) {
	if pixelWidth <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidViewport, pixelWidth)
	}

	ratio := math.Exp(math.Log(d.MaxFrequency/d.MinFrequency) / float64(pixelWidth))

	table := make(FrequencyTable, pixelWidth)
	table[0] = d.MinFrequency
	for i := 1; i < pixelWidth; i++ {
		table[i] = table[i-1] * ratio
	}
	return table, nil
}

// Column returns the pixel column whose frequency is nearest to freq.
//
// The table is strictly increasing, so this is a binary search that agrees
// with Nearest, including its tie-break toward the upper neighbour.
func (t FrequencyTable) Column(freq float64) int {
	if len(t) == 0 {
		return -1
	}

	i := sort.SearchFloat64s(t, freq)
	switch {
	case i == len(t):
		return len(t) - 1
	case t[i] == freq:
		return i
	case i == 0:
		return 0
	}

	if math.Abs(freq-t[i-1]) < math.Abs(freq-t[i]) {
		return i - 1
	}
	return i
}
