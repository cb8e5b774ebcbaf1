package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestBuildSpectrogramShape(t *testing.T) {
	sig := Signal{SampleRate: 8000, Samples: sine(8000, 8000, 440, 1)}
	s, err := buildSpectrogram(sig, DefaultSpectrogramConfig())
	require.NoError(t, err)

	require.Len(t, s.Frequencies, 129)
	require.Len(t, s.Times, 35)
	require.Len(t, s.Power, 129)
	for _, row := range s.Power {
		require.Len(t, row, 35)
	}
	assert.Equal(t, 0.0, s.Frequencies[0])
	assert.Equal(t, 31.25, s.Frequencies[1])
	assert.Equal(t, 4000.0, s.Frequencies[128])
	assert.InDelta(t, 0.016, s.Times[0], 1e-12)
	assert.InDelta(t, 0.044, s.Times[1], 1e-12)
	assert.Equal(t, sig.Samples, s.Samples)
}

func TestBuildSpectrogramPeak(t *testing.T) {
	sig := Signal{SampleRate: 8000, Samples: sine(8000, 8000, 440, 1)}
	s, err := buildSpectrogram(sig, DefaultSpectrogramConfig())
	require.NoError(t, err)

	column := make([]float64, len(s.Frequencies))
	for ti := range s.Times {
		for k := range column {
			column[k] = s.Power[k][ti]
		}
		assert.Equal(t, 14, floats.MaxIdx(column), "segment %d", ti)

		// The one-sided density integrates to the mean square of the sine.
		total := floats.Sum(column) * 8000 / 256
		assert.InEpsilon(t, 0.5, total, 0.05, "segment %d", ti)
	}
}

func TestBuildSpectrogramShortSignal(t *testing.T) {
	sig := Signal{SampleRate: 1000, Samples: sine(1000, 100, 100, 1)}
	s, err := buildSpectrogram(sig, DefaultSpectrogramConfig())
	require.NoError(t, err)
	assert.Len(t, s.Frequencies, 51)
	assert.Len(t, s.Times, 1)
	assert.InDelta(t, 0.05, s.Times[0], 1e-12)
}

func TestBuildSpectrogramInvalid(t *testing.T) {
	_, err := buildSpectrogram(Signal{SampleRate: 8000}, DefaultSpectrogramConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildSpectrogram(Signal{SampleRate: 8000, Samples: make([]float64, 1000)}, SpectrogramConfig{SegmentLength: 128, Overlap: 200})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSpectrogramDecibels(t *testing.T) {
	s := &Spectrogram{Power: [][]float64{{1, 100}, {0, 0.001}}}
	db := s.Decibels()
	assert.InDeltaSlice(t, []float64{0, 20}, db[0], 1e-12)
	assert.True(t, math.IsInf(db[1][0], -1))
	assert.InDelta(t, -30, db[1][1], 1e-12)
}

func TestPeriodicTukey(t *testing.T) {
	w := periodicTukey(256, tukeyAlpha)
	require.Len(t, w, 256)
	assert.Equal(t, 0.0, w[0])
	assert.InDelta(t, 1, w[128], 1e-12)
	// Periodic windows are symmetric about n/2.
	for i := 1; i < 128; i++ {
		assert.InDelta(t, w[i], w[256-i], 1e-12, "sample %d", i)
	}
}
