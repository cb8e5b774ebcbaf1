package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
)

// Waveforms longer than this are drawn as per-bucket minimum and maximum.
const maxWaveformPoints = 20000

type chartRenderer interface {
	Render(w io.Writer) error
}

// SignalWindow reduces a long signal to a drawable envelope.
type SignalWindow struct {
	times       []float64
	buf         []float64
	scaleFactor int
}

func NewSignalWindow(times, buf []float64, maxPoints int) *SignalWindow {
	scale := 1
	if maxPoints > 1 && len(buf) > maxPoints {
		scale = (len(buf) + maxPoints/2 - 1) / (maxPoints / 2)
	}
	return &SignalWindow{times, buf, scale}
}

func (sw *SignalWindow) Len() int {
	return (len(sw.buf) + sw.scaleFactor - 1) / sw.scaleFactor
}

// Get returns the extremes of bucket v and their time values.
func (sw *SignalWindow) Get(v int) (lt, l, ut, u float64) {
	start := v * sw.scaleFactor
	end := min((v+1)*sw.scaleFactor, len(sw.buf))
	li, ui := start, start
	for i := start; i < end; i++ {
		if sw.buf[i] < sw.buf[li] {
			li = i
		}
		if sw.buf[i] > sw.buf[ui] {
			ui = i
		}
	}
	return sw.times[li], sw.buf[li], sw.times[ui], sw.buf[ui]
}

// Points lists the envelope in time order.
func (sw *SignalWindow) Points() []opts.LineData {
	if sw.scaleFactor == 1 {
		data := make([]opts.LineData, len(sw.buf))
		for i, v := range sw.buf {
			data[i] = opts.LineData{Value: []float64{sw.times[i], v}}
		}
		return data
	}
	data := make([]opts.LineData, 0, 2*sw.Len())
	for i := 0; i < sw.Len(); i++ {
		lt, l, ut, u := sw.Get(i)
		if ut < lt {
			lt, l, ut, u = ut, u, lt, l
		}
		data = append(data, opts.LineData{Value: []float64{lt, l}}, opts.LineData{Value: []float64{ut, u}})
	}
	return data
}

func newLineChart(title, xName, yName string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(nil).AddSeries(yName, data)
	return line
}

// profilePage stacks the waveform above the dominant frequency profile.
func profilePage(profile *Profile) *components.Page {
	sig := profile.Signal
	waveform := NewSignalWindow(profile.TimeValues, sig.Samples, maxWaveformPoints)
	log.Debugf("Drawing %d samples with scale factor %d", len(sig.Samples), waveform.scaleFactor)

	times, freqs := Unzip(profile.Points)
	dominant := make([]opts.LineData, len(times))
	for i := range times {
		dominant[i] = opts.LineData{Value: []float64{times[i], freqs[i]}}
	}

	page := components.NewPage()
	page.PageTitle = "Dominant frequency"
	page.AddCharts(
		newLineChart("Audio Signal", "Time (seconds)", "Amplitude", waveform.Points()),
		newLineChart("Dominant Frequency Over Time", "Time (sec)", "Frequency (Hz)", dominant),
	)
	return page
}

func drawProfile(fileName string, profile *Profile) error {
	return renderToFile(fileName, profilePage(profile))
}

func renderToFile(fileName string, chart chartRenderer) error {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := chart.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, fileName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, fileName, err)
	}
	log.Infof("Chart written to %s", fileName)
	return nil
}
