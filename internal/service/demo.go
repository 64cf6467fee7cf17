package service

// The demo sample set: a handset speaker response from 20 Hz to just under 20 kHz.
var (
	demoFrequencies = []float64{20, 100, 300, 550, 625, 1056, 2085, 3566, 8021, 11222, 13446, 17899, 19865}
	demoGains       = []float64{-10, -2, -3, 1, 2, 6, 3, 1, -1, -3, -2, 1, 3}
)

// DemoFrequencies returns a copy of the demo sample frequencies
func DemoFrequencies() []float64 {
	return append([]float64(nil), demoFrequencies...)
}

// DemoGains returns a copy of the demo sample gains
func DemoGains() []float64 {
	return append([]float64(nil), demoGains...)
}
