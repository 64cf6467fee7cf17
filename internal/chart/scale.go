package chart

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale maps value linearly from [fromMin, fromMax] onto [toMin, toMax] and
// rounds the result to two decimal places, halves away from zero.
func Scale(fromMin, fromMax, toMin, toMax, value float64) (float64, error) {
	if fromMax == fromMin {
		return 0, fmt.Errorf("%w: source interval [%g, %g]", ErrDegenerateRange, fromMin, fromMax)
	}
	v := (value-fromMin)*(toMax-toMin)/(fromMax-fromMin) + toMin
	return roundHalfUp(v, 2), nil
}

// roundHalfUp rounds on the shortest decimal representation of v, so 1.005
// becomes 1.01 rather than falling victim to its binary expansion.
func roundHalfUp(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
