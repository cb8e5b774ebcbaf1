package main

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Spectrogram is a one-sided power spectral density surface.
type Spectrogram struct {
	SampleRate  int
	Samples     []float64
	Frequencies []float64
	Times       []float64
	// Power is indexed [frequency][time].
	Power [][]float64
}

// buildSpectrogram computes a Tukey-tapered STFT of the whole signal. It does
// not share the window policy of the dominant frequency analysis.
func buildSpectrogram(sig Signal, cfg SpectrogramConfig) (*Spectrogram, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	samples := sig.Samples
	segment, overlap, err := cfg.resolve(len(samples))
	if err != nil {
		return nil, err
	}
	step := segment - overlap
	count := (len(samples) - overlap) / step
	rate := float64(sig.SampleRate)

	taper := periodicTukey(segment, tukeyAlpha)
	scale := 1 / (rate * floats.Dot(taper, taper))
	nBins := segment/2 + 1
	// The Nyquist bin exists only for even lengths and is not doubled.
	lastDoubled := nBins - 1
	if segment%2 == 0 {
		lastDoubled = nBins - 2
	}

	log.WithFields(log.Fields{
		"segment":  segment,
		"overlap":  overlap,
		"segments": count,
		"bins":     nBins,
	}).Debug("Building spectrogram")

	freqs := make([]float64, nBins)
	for k := range freqs {
		freqs[k] = float64(k) * rate / float64(segment)
	}
	power := make([][]float64, nBins)
	for k := range power {
		power[k] = make([]float64, count)
	}
	times := make([]float64, count)

	fft := fourier.NewFFT(segment)
	frame := make([]float64, segment)
	coeffs := make([]complex128, nBins)
	for t := 0; t < count; t++ {
		start := t * step
		seg := samples[start : start+segment]
		mean := floats.Sum(seg) / float64(segment)
		for j, v := range seg {
			frame[j] = (v - mean) * taper[j]
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			p := (real(c)*real(c) + imag(c)*imag(c)) * scale
			if k >= 1 && k <= lastDoubled {
				p *= 2
			}
			power[k][t] = p
		}
		times[t] = (float64(segment)/2 + float64(start)) / rate
	}

	return &Spectrogram{
		SampleRate:  sig.SampleRate,
		Samples:     samples,
		Frequencies: freqs,
		Times:       times,
		Power:       power,
	}, nil
}

// Decibels returns 10*log10 of every power cell. Zero power gives -Inf.
func (s *Spectrogram) Decibels() [][]float64 {
	db := make([][]float64, len(s.Power))
	for k, row := range s.Power {
		db[k] = make([]float64, len(row))
		for t, p := range row {
			db[k][t] = 10 * math.Log10(p)
		}
	}
	return db
}

// periodicTukey is the FFT framing form: the symmetric window one sample
// longer with its last sample dropped.
func periodicTukey(n int, alpha float64) []float64 {
	seq := make([]float64, n+1)
	for i := range seq {
		seq[i] = 1
	}
	return window.Tukey{Alpha: alpha}.Transform(seq)[:n]
}
