package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// TimePoint is one sample of the exported time/amplitude series.
type TimePoint struct {
	Time      float64
	Amplitude float64
}

// timeAmplitudeSeries pairs every sample with its time value.
func timeAmplitudeSeries(sig Signal) []TimePoint {
	times := sig.TimeValues()
	points := make([]TimePoint, len(sig.Samples))
	for i, v := range sig.Samples {
		points[i] = TimePoint{Time: times[i], Amplitude: v}
	}
	return points
}

// writeTimeSeries writes one "[time, amplitude]" line per point. Integral
// amplitudes are printed without a fraction.
func writeTimeSeries(w io.Writer, points []TimePoint, integral bool) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		amplitude := formatFloat(p.Amplitude)
		if integral {
			amplitude = strconv.FormatFloat(p.Amplitude, 'f', 0, 64)
		}
		if _, err := fmt.Fprintf(bw, "[%s, %s]\n", formatFloat(p.Time), amplitude); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// exportTimeSeries replaces path with the time/amplitude series of sig.
func exportTimeSeries(path string, sig Signal) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := writeTimeSeries(f, timeAmplitudeSeries(sig), sig.Integral); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}

// parseTimeSeries reads back what writeTimeSeries wrote. Blank lines are skipped.
func parseTimeSeries(r io.Reader) ([]TimePoint, error) {
	points := make([]TimePoint, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		inner, ok := strings.CutPrefix(text, "[")
		if ok {
			inner, ok = strings.CutSuffix(inner, "]")
		}
		var timeField, ampField string
		if ok {
			timeField, ampField, ok = strings.Cut(inner, ",")
		}
		if !ok {
			return nil, fmt.Errorf("%w: line %d: malformed %q", ErrDecode, line, text)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(timeField), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDecode, line, err)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(ampField), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDecode, line, err)
		}
		points = append(points, TimePoint{Time: t, Amplitude: a})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return points, nil
}

// formatFloat prints the shortest representation that parses back to v, in
// positional notation with at least one fractional digit for magnitudes in
// [1e-4, 1e16) and in exponent notation otherwise.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
