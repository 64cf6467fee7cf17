package models

// FrequencyPoint represents a single frequency measurement
type FrequencyPoint struct {
	Frequency float64 `json:"frequency" doc:"Frequency in Hz"`
	Magnitude float64 `json:"magnitude" doc:"Magnitude in dB"`
}

// SplitPoints separates measurements into parallel frequency and gain slices
func SplitPoints(points []FrequencyPoint) (frequencies, gains []float64) {
	frequencies = make([]float64, len(points))
	gains = make([]float64, len(points))
	for i, p := range points {
		frequencies[i] = p.Frequency
		gains[i] = p.Magnitude
	}
	return frequencies, gains
}
