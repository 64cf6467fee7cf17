package chart

import (
	"fmt"
	"math"
)

// Domain holds the fixed axis configuration of a chart
type Domain struct {
	MinFrequency float64
	MaxFrequency float64
	GainMin      float64
	GainMax      float64
	GainInterval float64

	// MajorMarks are the primary frequency gridlines. The lowest and highest
	// entries are treated as boundary marks: labeled but never ruled.
	MajorMarks []float64
	// MinorMarks are the secondary frequency gridlines
	MinorMarks []float64
	// LabeledMinorMarks is the subset of MinorMarks that carry a label
	LabeledMinorMarks []float64
}

// DefaultDomain returns the audio-band domain: 20 Hz to 20 kHz, -15 dB to +15 dB in 5 dB steps
func DefaultDomain() Domain {
	return Domain{
		MinFrequency: 20,
		MaxFrequency: 20000,
		GainMin:      -15,
		GainMax:      15,
		GainInterval: 5,
		MajorMarks:   []float64{20, 100, 1000, 10000, 20000},
		MinorMarks: []float64{
			30, 40, 50, 60, 70, 80, 90,
			200, 300, 400, 500, 600, 700, 800, 900,
			2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000,
		},
		LabeledMinorMarks: []float64{50, 500, 5000},
	}
}

// Validate checks the domain invariants
func (d Domain) Validate() error {
	if !(d.MinFrequency > 0) || !(d.MinFrequency < d.MaxFrequency) {
		return fmt.Errorf("%w: frequency range [%g, %g]", ErrInvalidDomain, d.MinFrequency, d.MaxFrequency)
	}
	if !(d.GainMin < d.GainMax) {
		return fmt.Errorf("%w: gain range [%g, %g]", ErrInvalidDomain, d.GainMin, d.GainMax)
	}
	if !(d.GainInterval > 0) {
		return fmt.Errorf("%w: gain interval %g", ErrInvalidDomain, d.GainInterval)
	}
	if math.Mod(d.GainMax-d.GainMin, d.GainInterval) != 0 {
		return fmt.Errorf("%w: gain range %g is not a multiple of interval %g",
			ErrInvalidDomain, d.GainMax-d.GainMin, d.GainInterval)
	}
	return nil
}

// GainLevels partitions the gain range into evenly spaced levels, from
// GainMax down to GainMin inclusive.
func (d Domain) GainLevels() []float64 {
	n := int(math.Round((d.GainMax-d.GainMin)/d.GainInterval)) + 1
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = d.GainMax - float64(i)*d.GainInterval
	}
	return levels
}

func (d Domain) isLabeledMinor(v float64) bool {
	for _, m := range d.LabeledMinorMarks {
		if m == v {
			return true
		}
	}
	return false
}
