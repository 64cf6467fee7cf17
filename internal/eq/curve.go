// Package eq evaluates parametric equalizer target curves. The gains it
// produces feed the chart engine as plot samples.
package eq

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// DefaultSampleRate is used when a Curve does not name one
const DefaultSampleRate = 48000

const defaultQ = 1 / math.Sqrt2

// ErrInvalidBand is returned for a band that cannot be designed
var ErrInvalidBand = errors.New("invalid eq band")

// BandType names the filter shape of a band
type BandType string

const (
	Peak      BandType = "peak"
	LowShelf  BandType = "low_shelf"
	HighShelf BandType = "high_shelf"
	Lowpass   BandType = "lowpass"
	Highpass  BandType = "highpass"
)

// Band is one filter of a parametric EQ
type Band struct {
	Type      BandType `json:"type" enum:"peak,low_shelf,high_shelf,lowpass,highpass" doc:"Filter shape"`
	Frequency float64  `json:"frequency" exclusiveMinimum:"0" doc:"Centre or corner frequency in Hz"`
	Gain      float64  `json:"gain,omitempty" doc:"Gain in dB for peak and shelf bands"`
	Q         float64  `json:"q,omitempty" doc:"Quality factor, 0.707 when omitted"`
}

// Curve is a cascade of bands evaluated at a fixed sample rate
type Curve struct {
	SampleRate float64
	Bands      []Band
}

func (b Band) coefficients(sampleRate float64) (biquad.Coefficients, error) {
	if !(b.Frequency > 0) || b.Frequency >= sampleRate/2 {
		return biquad.Coefficients{}, fmt.Errorf("%w: %s at %g Hz outside (0, %g)", ErrInvalidBand, b.Type, b.Frequency, sampleRate/2)
	}

	q := b.Q
	if q <= 0 {
		q = defaultQ
	}

	switch b.Type {
	case Peak:
		return design.Peak(b.Frequency, b.Gain, q, sampleRate), nil
	case LowShelf:
		return design.LowShelf(b.Frequency, b.Gain, q, sampleRate), nil
	case HighShelf:
		return design.HighShelf(b.Frequency, b.Gain, q, sampleRate), nil
	case Lowpass:
		return design.Lowpass(b.Frequency, q, sampleRate), nil
	case Highpass:
		return design.Highpass(b.Frequency, q, sampleRate), nil
	}
	return biquad.Coefficients{}, fmt.Errorf("%w: unknown type %q", ErrInvalidBand, b.Type)
}

// Response returns the cascaded magnitude response in dB at each frequency.
// A curve with no bands is flat.
func (c Curve) Response(frequencies []float64) ([]float64, error) {
	sr := c.SampleRate
	if sr <= 0 {
		sr = DefaultSampleRate
	}

	total := make([]float64, len(frequencies))
	for i := range total {
		total[i] = 1
	}

	band := make([]float64, len(frequencies))
	for _, b := range c.Bands {
		coeffs, err := b.coefficients(sr)
		if err != nil {
			return nil, err
		}
		for i, f := range frequencies {
			band[i] = math.Sqrt(coeffs.MagnitudeSquared(f, sr))
		}
		vecmath.MulBlockInPlace(total, band)
	}

	for i, m := range total {
		total[i] = 20 * math.Log10(m)
	}
	return total, nil
}

// LogSpaced returns n frequencies spread evenly on a log scale over [min, max]
func LogSpaced(n int, min, max float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}

	out := make([]float64, n)
	step := math.Log(max/min) / float64(n-1)
	for i := range out {
		out[i] = min * math.Exp(step*float64(i))
	}
	out[n-1] = max
	return out
}

// ParseBands reads a comma separated list of type:frequency[:gain[:q]] bands,
// for example "low_shelf:100:3,peak:1000:-6:2".
func ParseBands(s string) ([]Band, error) {
	var bands []Band
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 4 {
			return nil, fmt.Errorf("%w: %q, want type:frequency[:gain[:q]]", ErrInvalidBand, item)
		}

		b := Band{Type: BandType(parts[0])}
		nums := make([]float64, len(parts)-1)
		for i, p := range parts[1:] {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBand, item, err)
			}
			nums[i] = v
		}
		b.Frequency = nums[0]
		if len(nums) > 1 {
			b.Gain = nums[1]
		}
		if len(nums) > 2 {
			b.Q = nums[2]
		}
		bands = append(bands, b)
	}
	return bands, nil
}
