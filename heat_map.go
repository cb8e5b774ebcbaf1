package main

import (
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
)

// HeatMap draws a spectrogram as time by frequency cells coloured by intensity in dB.
type HeatMap struct {
	buf   [][]float64 // [frequency][time], dB
	freqs []float64
	times []float64
}

func NewHeatMap(s *Spectrogram) *HeatMap {
	return &HeatMap{s.Decibels(), s.Frequencies, s.Times}
}

// Range returns the smallest and largest finite cell. Both are 0 when no cell
// is finite.
func (hm *HeatMap) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range hm.buf {
		for _, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Cells lists every cell with axis indexes. Silent cells are drawn at the floor.
func (hm *HeatMap) Cells() []opts.HeatMapData {
	lo, _ := hm.Range()
	data := make([]opts.HeatMapData, 0, len(hm.freqs)*len(hm.times))
	for j, row := range hm.buf {
		for i, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				v = lo
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}
	return data
}

func axisLabels(values []float64, prec int) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return labels
}

func (hm *HeatMap) Chart() *charts.HeatMap {
	lo, hi := hm.Range()
	log.Tracef("Heat map range: %v..%v dB", lo, hi)

	chart := charts.NewHeatMap()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Spectrogram", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Spectrogram"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Time (sec)",
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Frequency (Hz)",
			Type:      "category",
			Data:      axisLabels(hm.freqs, 1),
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(lo),
			Max:        float32(hi),
			Text:       []string{"Intensity (dB)"},
			InRange: &opts.VisualMapInRange{
				Color: []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
			},
		}),
	)
	chart.SetXAxis(axisLabels(hm.times, 3)).AddSeries("Intensity (dB)", hm.Cells())
	return chart
}

func drawSpectrogram(fileName string, s *Spectrogram) error {
	return renderToFile(fileName, NewHeatMap(s).Chart())
}
