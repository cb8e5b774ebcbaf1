package main

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

const bandPassOrder = 200

// BandPassFilter is a windowed-sinc FIR band-pass applied by FFT convolution.
type BandPassFilter struct {
	kernel []float64
}

func NewBandPassFilter(sampleRate int, lowHz, highHz float64) (*BandPassFilter, error) {
	nyquist := float64(sampleRate) / 2
	if lowHz <= 0 || highHz <= lowHz || highHz >= nyquist {
		return nil, fmt.Errorf("%w: band %v-%v Hz must lie inside (0, %v)", ErrInvalidInput, lowHz, highHz, nyquist)
	}
	rate := float64(sampleRate)
	return &BandPassFilter{windowSincKernelBp(bandPassOrder, lowHz/rate, highHz/rate)}, nil
}

// Apply filters the whole signal. The kernel's group delay is removed, so the
// output is aligned with and as long as the input.
func (f *BandPassFilter) Apply(signal []float64) []float64 {
	m := len(f.kernel) - 1
	n := len(signal) + m
	x := dsputils.ToComplex(dsputils.ZeroPadF(signal, n))
	h := dsputils.ToComplex(dsputils.ZeroPadF(f.kernel, n))
	y := fft.Convolve(x, h)

	out := make([]float64, len(signal))
	for i := range out {
		out[i] = real(y[i+m/2])
	}
	return out
}

// windowSincKernelLp returns m+1 Blackman windowed-sinc taps with unity DC gain.
// fc is the cutoff as a fraction of the sample rate; m must be even.
func windowSincKernelLp(m int, fc float64) []float64 {
	h := make([]float64, m+1)
	mF := float64(m)
	mid := m / 2
	for i := 0; i <= m; i++ {
		if i == mid {
			h[i] = 2 * math.Pi * fc
			continue
		}
		iF := float64(i)
		// Blackman window
		w := 0.42 - 0.5*math.Cos(2*math.Pi*iF/mF) + 0.08*math.Cos(4*math.Pi*iF/mF)
		x := iF - float64(mid)
		h[i] = w * math.Sin(2*math.Pi*fc*x) / x
	}
	var sum float64 = 0
	for i := 0; i <= m; i++ {
		sum += h[i]
	}
	for i := 0; i <= m; i++ {
		h[i] /= sum
	}
	return h
}

func windowSincKernelHp(m int, fc float64) []float64 {
	hp := windowSincKernelLp(m, fc)
	for i := 0; i < len(hp); i++ {
		hp[i] = -hp[i]
	}
	hp[len(hp)/2] += 1
	return hp
}

// windowSincKernelBp inverts the band-reject made of a low-pass at fcL and a
// high-pass at fcH.
func windowSincKernelBp(m int, fcL, fcH float64) []float64 {
	lp := windowSincKernelLp(m, fcL)
	hp := windowSincKernelHp(m, fcH)
	bp := make([]float64, m+1)
	for i := 0; i < len(bp); i++ {
		bp[i] = -(lp[i] + hp[i])
	}
	bp[len(bp)/2] += 1
	return bp
}
