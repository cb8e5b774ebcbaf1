package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// FrequencyPoint is the dominant frequency of the window starting at Time.
type FrequencyPoint struct {
	Time      float64
	Frequency float64
}

// Profile is the result of one analysis run.
type Profile struct {
	Signal     Signal
	TimeValues []float64
	WindowSize int
	HopSize    int
	Points     []FrequencyPoint
}

// Resolution is the spacing of frequency bins in Hz.
func (p *Profile) Resolution() float64 {
	return float64(p.Signal.SampleRate) / float64(p.WindowSize)
}

// analyze runs the dominant frequency pipeline over sig. A signal shorter than
// one window yields an empty profile, not an error.
func analyze(sig Signal, cfg AnalysisConfig) (*Profile, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	windowSize, hopSize, err := cfg.Sizes(sig.SampleRate)
	if err != nil {
		return nil, err
	}

	samples := sig.Samples
	if cfg.bandPassEnabled() {
		filter, err := NewBandPassFilter(sig.SampleRate, cfg.BandLowHz, cfg.BandHighHz)
		if err != nil {
			return nil, err
		}
		samples = filter.Apply(samples)
		log.Debugf("Band-pass %v-%v Hz applied", cfg.BandLowHz, cfg.BandHighHz)
	}

	timeValues := sig.TimeValues()
	ws := windows(samples, windowSize, hopSize)
	log.WithFields(log.Fields{
		"samples":     len(samples),
		"sample_rate": sig.SampleRate,
		"window_size": windowSize,
		"hop_size":    hopSize,
		"windows":     len(ws),
	}).Debug("Windowing signal")

	points := make([]FrequencyPoint, len(ws))
	for i, w := range ws {
		dominant := newSpectrum(w, sig.SampleRate).Dominant()
		points[i] = FrequencyPoint{
			Time:      timeValues[i*hopSize],
			Frequency: dominant.Freq,
		}
		log.Tracef("Window %d at %.4fs: %v Hz (magnitude %v)", i, points[i].Time, dominant.Freq, dominant.Magn)
	}

	return &Profile{
		Signal:     sig,
		TimeValues: timeValues,
		WindowSize: windowSize,
		HopSize:    hopSize,
		Points:     points,
	}, nil
}

// Unzip splits points into parallel time and frequency slices. An empty series
// gives two empty slices.
func Unzip(points []FrequencyPoint) (times, freqs []float64) {
	times = make([]float64, len(points))
	freqs = make([]float64, len(points))
	for i, p := range points {
		times[i] = p.Time
		freqs[i] = p.Frequency
	}
	return times, freqs
}

func (p *Profile) String() string {
	return fmt.Sprintf("%d windows of %d samples, hop %d, %.2f Hz bins", len(p.Points), p.WindowSize, p.HopSize, p.Resolution())
}
