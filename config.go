package main

import (
	"fmt"
	"math"
)

const (
	defaultWindowSeconds = 0.05
	defaultHopSeconds    = 0.025

	defaultSegmentLength = 256
	tukeyAlpha           = 0.25
)

// AnalysisConfig holds the window policy of the dominant frequency pipeline.
type AnalysisConfig struct {
	WindowSeconds float64
	HopSeconds    float64

	// Optional band-pass pre-filter. Applied only when both edges are positive.
	BandLowHz  float64
	BandHighHz float64
}

func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		WindowSeconds: defaultWindowSeconds,
		HopSeconds:    defaultHopSeconds,
	}
}

// Sizes converts the window policy into sample counts for the given rate.
func (c AnalysisConfig) Sizes(sampleRate int) (windowSize, hopSize int, err error) {
	if sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, sampleRate)
	}
	if c.WindowSeconds <= 0 || c.HopSeconds <= 0 {
		return 0, 0, fmt.Errorf("%w: window and hop must be positive, got %v/%v", ErrInvalidInput, c.WindowSeconds, c.HopSeconds)
	}
	windowSize = int(math.Round(float64(sampleRate) * c.WindowSeconds))
	hopSize = int(math.Round(float64(sampleRate) * c.HopSeconds))
	if windowSize < 2 {
		return 0, 0, fmt.Errorf("%w: window of %vs at %d Hz is shorter than 2 samples", ErrInvalidInput, c.WindowSeconds, sampleRate)
	}
	if hopSize < 1 {
		return 0, 0, fmt.Errorf("%w: hop of %vs at %d Hz is shorter than 1 sample", ErrInvalidInput, c.HopSeconds, sampleRate)
	}
	return windowSize, hopSize, nil
}

func (c AnalysisConfig) bandPassEnabled() bool {
	return c.BandLowHz > 0 && c.BandHighHz > 0
}

// SpectrogramConfig holds the STFT policy of the spectrogram. Zero values pick
// the conventional defaults: 256 sample segments overlapping by an eighth.
type SpectrogramConfig struct {
	SegmentLength int
	Overlap       int
}

func DefaultSpectrogramConfig() SpectrogramConfig {
	return SpectrogramConfig{SegmentLength: defaultSegmentLength}
}

// resolve returns the effective segment length and overlap for n samples.
func (c SpectrogramConfig) resolve(n int) (segment, overlap int, err error) {
	segment = c.SegmentLength
	if segment == 0 {
		segment = defaultSegmentLength
	}
	if segment < 0 || c.Overlap < 0 {
		return 0, 0, fmt.Errorf("%w: segment %d and overlap %d must not be negative", ErrInvalidInput, c.SegmentLength, c.Overlap)
	}
	if segment > n {
		segment = n
	}
	if segment < 2 {
		return 0, 0, fmt.Errorf("%w: %d samples are too few for a spectrogram", ErrInvalidInput, n)
	}
	overlap = c.Overlap
	if overlap == 0 {
		overlap = segment / 8
	}
	if overlap >= segment {
		return 0, 0, fmt.Errorf("%w: overlap %d must be smaller than segment %d", ErrInvalidInput, overlap, segment)
	}
	return segment, overlap, nil
}
