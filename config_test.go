package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisConfigSizes(t *testing.T) {
	tests := []struct {
		name       string
		cfg        AnalysisConfig
		rate       int
		wantWindow int
		wantHop    int
	}{
		{"defaults at 8 kHz", DefaultAnalysisConfig(), 8000, 400, 200},
		{"defaults at 16 kHz", DefaultAnalysisConfig(), 16000, 800, 400},
		{"rounded", AnalysisConfig{WindowSeconds: 0.0125, HopSeconds: 0.0063}, 1000, 13, 6},
		{"custom", AnalysisConfig{WindowSeconds: 0.1, HopSeconds: 0.05}, 8000, 800, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, hop, err := tt.cfg.Sizes(tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWindow, window)
			assert.Equal(t, tt.wantHop, hop)
		})
	}
}

func TestAnalysisConfigSizesInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  AnalysisConfig
		rate int
	}{
		{"zero rate", DefaultAnalysisConfig(), 0},
		{"negative rate", DefaultAnalysisConfig(), -8000},
		{"zero window", AnalysisConfig{WindowSeconds: 0, HopSeconds: 0.025}, 8000},
		{"negative hop", AnalysisConfig{WindowSeconds: 0.05, HopSeconds: -1}, 8000},
		{"window below two samples", AnalysisConfig{WindowSeconds: 0.0001, HopSeconds: 0.025}, 8000},
		{"hop below one sample", AnalysisConfig{WindowSeconds: 0.05, HopSeconds: 0.00001}, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.cfg.Sizes(tt.rate)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSpectrogramConfigResolve(t *testing.T) {
	segment, overlap, err := DefaultSpectrogramConfig().resolve(8000)
	require.NoError(t, err)
	assert.Equal(t, 256, segment)
	assert.Equal(t, 32, overlap)

	segment, overlap, err = SpectrogramConfig{}.resolve(100)
	require.NoError(t, err)
	assert.Equal(t, 100, segment)
	assert.Equal(t, 12, overlap)

	segment, overlap, err = SpectrogramConfig{SegmentLength: 512, Overlap: 256}.resolve(8000)
	require.NoError(t, err)
	assert.Equal(t, 512, segment)
	assert.Equal(t, 256, overlap)

	_, _, err = SpectrogramConfig{SegmentLength: 64, Overlap: 64}.resolve(8000)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = SpectrogramConfig{SegmentLength: -1}.resolve(8000)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = SpectrogramConfig{}.resolve(1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
