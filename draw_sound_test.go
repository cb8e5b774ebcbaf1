package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalWindowKeepsShortSignals(t *testing.T) {
	sw := NewSignalWindow([]float64{0, 0.5, 1}, []float64{3, -1, 2}, 100)
	assert.Equal(t, 1, sw.scaleFactor)
	points := sw.Points()
	require.Len(t, points, 3)
	assert.Equal(t, []float64{0.5, -1}, points[1].Value)
}

func TestSignalWindowEnvelope(t *testing.T) {
	times := make([]float64, 100)
	buf := make([]float64, 100)
	for i := range buf {
		times[i] = float64(i)
		buf[i] = float64(i % 10)
	}
	buf[13] = -5

	sw := NewSignalWindow(times, buf, 20)
	assert.Equal(t, 10, sw.scaleFactor)
	assert.Equal(t, 10, sw.Len())

	lt, l, ut, u := sw.Get(1)
	assert.Equal(t, []float64{13, -5, 19, 9}, []float64{lt, l, ut, u})

	points := sw.Points()
	require.Len(t, points, 20)
	assert.Equal(t, []float64{0, 0}, points[0].Value)
	assert.Equal(t, []float64{9, 9}, points[1].Value)
	assert.Equal(t, []float64{13, -5}, points[2].Value)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].Value.([]float64)[0], points[i].Value.([]float64)[0])
	}
}

func TestProfilePage(t *testing.T) {
	sig := Signal{SampleRate: 8000, Samples: sine(8000, 8000, 440, 1000)}
	profile, err := analyze(sig, DefaultAnalysisConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, profilePage(profile).Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "Audio Signal")
	assert.Contains(t, html, "Dominant Frequency Over Time")
	assert.Contains(t, html, "Frequency (Hz)")
}

func TestDrawProfile(t *testing.T) {
	sig := Signal{SampleRate: 8000, Samples: sine(8000, 100, 440, 1)}
	profile, err := analyze(sig, DefaultAnalysisConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "profile.html")
	require.NoError(t, drawProfile(path, profile))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	err = drawProfile(filepath.Join(t.TempDir(), "missing", "profile.html"), profile)
	assert.ErrorIs(t, err, ErrWriteOutput)
}
