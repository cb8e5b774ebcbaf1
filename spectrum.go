package main

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// SpectrumBin is one non-negative frequency slot of a window's transform.
type SpectrumBin struct {
	Freq float64
	Magn float64
}

// Spectrum is the magnitude spectrum of one window, restricted to the
// non-negative half of the transform. The window is not tapered.
type Spectrum struct {
	freqs []float64
	magns []float64
}

func newSpectrum(window []float64, sampleRate int) *Spectrum {
	raw := ToAbs(fft.FFTReal(window))
	n := len(window) / 2
	freqs := make([]float64, n)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(len(window))
	}
	return &Spectrum{freqs: freqs, magns: raw[:n:n]}
}

func (s *Spectrum) Len() int {
	return len(s.magns)
}

func (s *Spectrum) Bin(k int) SpectrumBin {
	return SpectrumBin{Freq: s.freqs[k], Magn: s.magns[k]}
}

// Dominant returns the bin with the largest magnitude. Among equal maxima the
// lowest frequency wins. The spectrum must not be empty.
func (s *Spectrum) Dominant() SpectrumBin {
	return s.Bin(floats.MaxIdx(s.magns))
}

func ToAbs(a []complex128) []float64 {
	r := make([]float64, len(a))
	for i := 0; i < len(a); i++ {
		r[i] = cmplx.Abs(a[i])
	}
	return r
}
