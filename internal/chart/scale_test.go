package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name                             string
		fromMin, fromMax, toMin, toMax, v float64
		want                             float64
	}{
		{"gain zero mid height", 15, -15, 0, 100, 0, 50},
		{"gain max", -15, 15, 0, 200, 15, 200},
		{"gain min", -15, 15, 0, 200, -15, 0},
		{"plain", 0, 10, 0, 100, 5, 50},
		{"offset target", 0, 10, 100, 200, 2.5, 125},
		{"two decimals", 0, 3, 0, 1, 1, 0.33},
		{"half up", 0, 1, 0, 1, 1.005, 1.01},
		{"half away from zero", 0, 1, 0, 1, -1.005, -1.01},
		{"out of range extrapolates", -15, 15, 0, 300, 30, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scale(tt.fromMin, tt.fromMax, tt.toMin, tt.toMax, tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScale_DegenerateRange(t *testing.T) {
	_, err := Scale(5, 5, 0, 100, 3)
	assert.ErrorIs(t, err, ErrDegenerateRange)
}

func TestScale_RoundTrip(t *testing.T) {
	d := DefaultDomain()
	for _, h := range []float64{100, 200, 480, 1080} {
		for g := d.GainMin; g <= d.GainMax; g += 0.25 {
			p, err := Scale(d.GainMax, d.GainMin, 0, h, g)
			require.NoError(t, err)
			back, err := Scale(0, h, d.GainMax, d.GainMin, p)
			require.NoError(t, err)
			assert.InDelta(t, g, back, 0.01, "gain %v height %v", g, h)
		}
	}
}
