package main

import "errors"

var (
	// ErrInvalidInput marks sample data or analysis parameters that cannot be analyzed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWriteOutput marks a result file that could not be written.
	ErrWriteOutput = errors.New("could not write output")
	// ErrDecode marks input that could not be turned into PCM samples.
	ErrDecode = errors.New("could not decode input")
	// ErrUnsupportedMedia is returned when a file has neither audio nor video streams.
	ErrUnsupportedMedia = errors.New("unsupported media")
)
