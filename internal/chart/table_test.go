package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrequencyTable(t *testing.T) {
	d := DefaultDomain()

	for _, width := range []int{1, 2, 7, 300, 1080} {
		table, err := BuildFrequencyTable(width, d)
		require.NoError(t, err)
		require.Len(t, table, width)
		assert.Equal(t, 20.0, table[0])

		for i := 1; i < len(table); i++ {
			assert.Greater(t, table[i], table[i-1], "width %d index %d", width, i)
		}

		// One more step past the last column lands on the domain maximum.
		ratio := math.Exp(math.Log(1000) / float64(width))
		assert.InDelta(t, 20000, table[width-1]*ratio, 1e-6)
	}
}

func TestBuildFrequencyTable_InvalidWidth(t *testing.T) {
	for _, width := range []int{0, -1, -300} {
		table, err := BuildFrequencyTable(width, DefaultDomain())
		assert.ErrorIs(t, err, ErrInvalidViewport)
		assert.Nil(t, table)
	}
}

func TestFrequencyTable_ColumnMatchesNearest(t *testing.T) {
	table, err := BuildFrequencyTable(300, DefaultDomain())
	require.NoError(t, err)

	var targets []float64
	targets = append(targets, table...)
	for i := 1; i < len(table); i++ {
		targets = append(targets, (table[i-1]+table[i])/2, table[i-1]*1.001, table[i]*0.999)
	}
	for f := 1.0; f < 30000; f *= 1.07 {
		targets = append(targets, f)
	}
	d := DefaultDomain()
	targets = append(targets, d.MajorMarks...)
	targets = append(targets, d.MinorMarks...)

	for _, target := range targets {
		want, ok := Nearest(table, target)
		require.True(t, ok)
		assert.Equal(t, want, table.Column(target), "target %v", target)
	}
}

func TestFrequencyTable_ColumnEmpty(t *testing.T) {
	assert.Equal(t, -1, FrequencyTable(nil).Column(100))
}
