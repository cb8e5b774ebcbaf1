package main

// windowCount is the number of full windows the analysis takes from n samples.
// A window that would end exactly at the last sample is not taken.
func windowCount(n, windowSize, hopSize int) int {
	if n < windowSize {
		return 0
	}
	return (n - windowSize) / hopSize
}

// windows returns views into samples; nothing is copied.
func windows(samples []float64, windowSize, hopSize int) [][]float64 {
	n := windowCount(len(samples), windowSize, hopSize)
	ws := make([][]float64, n)
	for i := 0; i < n; i++ {
		start := i * hopSize
		ws[i] = samples[start : start+windowSize : start+windowSize]
	}
	return ws
}
