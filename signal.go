package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Signal is a mono PCM sequence at a uniform sample rate.
type Signal struct {
	SampleRate int
	Samples    []float64
	// Integral is set when the samples came from integer PCM.
	Integral bool
}

// Validate rejects signals that cannot be windowed.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, s.SampleRate)
	}
	if len(s.Samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidInput)
	}
	return nil
}

// Duration in seconds.
func (s Signal) Duration() float64 {
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// TimeValues spreads len(Samples) points evenly over [0, Duration], both ends included.
func (s Signal) TimeValues() []float64 {
	t := make([]float64, len(s.Samples))
	if len(t) < 2 {
		return t
	}
	return floats.Span(t, 0, s.Duration())
}
