package chart

import "math"

// Nearest returns the index of the entry in values closest to target.
//
// An exact match returns immediately. Otherwise the largest entry below the
// target and the smallest entry above it compete, and equal distances go to
// the entry above. values need not be sorted. ok is false when values is
// empty or target is NaN.
//
// The engine looks up columns with FrequencyTable.Column, a binary search
// over the sorted table; Nearest is the linear reference it is tested against.
func Nearest(values []float64, target float64) (index int, ok bool) {
	var (
		lo, hi       float64
		loPos, hiPos int
		haveLo       bool
		haveHi       bool
	)

	for i, v := range values {
		switch {
		case v < target:
			if !haveLo || v > lo {
				lo, loPos, haveLo = v, i, true
			}
		case v > target:
			if !haveHi || v < hi {
				hi, hiPos, haveHi = v, i, true
			}
		case v == target:
			return i, true
		}
	}

	switch {
	case haveLo && haveHi:
		if math.Abs(target-lo) < math.Abs(target-hi) {
			return loPos, true
		}
		return hiPos, true
	case haveLo:
		return loPos, true
	case haveHi:
		return hiPos, true
	}
	return -1, false
}
