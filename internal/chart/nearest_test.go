package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearest(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		target float64
		want   int
	}{
		{"exact match", []float64{10, 20, 30, 40}, 30, 2},
		{"closer to lower", []float64{10, 20, 30, 40}, 22, 1},
		{"closer to upper", []float64{10, 20, 30, 40}, 28, 2},
		{"equidistant goes up", []float64{10, 20, 30, 40}, 25, 2},
		{"below all", []float64{10, 20, 30}, 1, 0},
		{"above all", []float64{10, 20, 30}, 99, 2},
		{"single entry", []float64{42}, 7, 0},
		{"unsorted", []float64{30, 10, 20}, 19, 2},
		{"zero is a real entry", []float64{-1, 0, 1}, 0.1, 1},
		{"zero as exact match", []float64{-2, 0, 2}, 0, 1},
		{"negative values", []float64{-30, -20, -10}, -24, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Nearest(tt.values, tt.target)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearest_NoCandidate(t *testing.T) {
	got, ok := Nearest(nil, 5)
	assert.False(t, ok)
	assert.Equal(t, -1, got)

	got, ok = Nearest([]float64{1, 2, 3}, math.NaN())
	assert.False(t, ok)
	assert.Equal(t, -1, got)
}
