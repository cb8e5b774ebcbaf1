package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/youpy/go-wav"
)

// MediaDecoder turns an arbitrary audio or video container into a WAV file
// and returns its path.
type MediaDecoder interface {
	Decode(ctx context.Context, path, workDir string) (string, error)
}

type sourceOptions struct {
	// RawSampleRate is the rate of headerless .raw/.pcm input.
	RawSampleRate int
	WorkDir       string
	Decoder       MediaDecoder
}

// loadSignal reads the first channel of path. WAV and raw S16LE files are read
// directly; everything else goes through the decoder first.
func loadSignal(ctx context.Context, path string, opt sourceOptions) (Signal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		if opt.RawSampleRate > 0 {
			log.Warnf("Ignoring sample rate %d for %s, WAV files carry their own", opt.RawSampleRate, path)
		}
		return readWavFile(path)
	case ".raw", ".pcm":
		return readRawFile(path, opt.RawSampleRate)
	}
	if opt.Decoder == nil {
		return Signal{}, fmt.Errorf("%w: no decoder for %s", ErrDecode, path)
	}
	wavPath, err := opt.Decoder.Decode(ctx, path, opt.WorkDir)
	if err != nil {
		return Signal{}, err
	}
	log.Debugf("Decoded %s to %s", path, wavPath)
	return readWavFile(wavPath)
}

func readWavFile(path string) (Signal, error) {
	file, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer file.Close()
	sig, err := readWav(file)
	if err != nil {
		return Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return sig, nil
}

type wavSource interface {
	io.Reader
	io.ReaderAt
}

func readWav(r wavSource) (Signal, error) {
	reader := wav.NewReader(r)
	format, err := reader.Format()
	if err != nil {
		return Signal{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	isFloat := format.AudioFormat == wav.AudioFormatIEEEFloat
	if format.AudioFormat != wav.AudioFormatPCM && !isFloat {
		return Signal{}, fmt.Errorf("%w: wav audio format %d", ErrDecode, format.AudioFormat)
	}
	// go-wav only decodes 32 bit floats.
	if isFloat && format.BitsPerSample != 32 {
		return Signal{}, fmt.Errorf("%w: %d bit float wav", ErrDecode, format.BitsPerSample)
	}
	if format.NumChannels > 1 {
		log.Debugf("Using the first of %d channels", format.NumChannels)
	}

	samples := make([]float64, 0)
	for {
		chunk, err := reader.ReadSamples()
		for _, s := range chunk {
			if isFloat {
				samples = append(samples, reader.FloatValue(s, 0))
			} else {
				samples = append(samples, float64(reader.IntValue(s, 0)))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Signal{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}
	log.WithFields(log.Fields{
		"sample_rate": format.SampleRate,
		"channels":    format.NumChannels,
		"bits":        format.BitsPerSample,
		"samples":     len(samples),
	}).Debug("Read wav")
	return Signal{SampleRate: int(format.SampleRate), Samples: samples, Integral: !isFloat}, nil
}

func readRawFile(path string, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: raw input %s needs a sample rate", ErrInvalidInput, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return Signal{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer file.Close()
	samples, err := readFileData(file)
	if err != nil {
		return Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return Signal{SampleRate: sampleRate, Samples: samples, Integral: true}, nil
}

// readFileData reads mono 16 bit little endian samples until EOF.
func readFileData(r io.Reader) ([]float64, error) {
	br := bufio.NewReader(r)
	buf := make([]float64, 0)
	for {
		var v int16
		err := binary.Read(br, binary.LittleEndian, &v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %w", ErrDecode, len(buf), err)
		}
		buf = append(buf, float64(v))
	}
	return buf, nil
}
