package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// MediaKind is what ffprobe found in a container.
type MediaKind string

const (
	MediaVideo   MediaKind = "video"
	MediaAudio   MediaKind = "audio"
	MediaInvalid MediaKind = "invalid"
)

const extractedAudioName = "extracted_audio.wav"

// FFmpegDecoder shells out to ffprobe and ffmpeg. Empty paths are looked up on PATH.
type FFmpegDecoder struct {
	FFmpegPath  string
	FFprobePath string
	// SampleRate resamples the decoded audio when positive.
	SampleRate int
}

func binaryPath(configured, name string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found: %w", ErrDecode, name, err)
	}
	return path, nil
}

// Probe classifies path by its stream codec types. Any video stream makes it video.
func (d *FFmpegDecoder) Probe(ctx context.Context, path string) (MediaKind, error) {
	ffprobe, err := binaryPath(d.FFprobePath, "ffprobe")
	if err != nil {
		return MediaInvalid, err
	}
	cmd := exec.CommandContext(ctx, ffprobe,
		"-loglevel", "error",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return MediaInvalid, fmt.Errorf("%w: ffprobe %s: %w: %s", ErrDecode, path, err, strings.TrimSpace(stderr.String()))
	}
	kind := classifyCodecTypes(string(out))
	log.Debugf("Probed %s as %s", path, kind)
	return kind, nil
}

func classifyCodecTypes(output string) MediaKind {
	kind := MediaInvalid
	for _, codecType := range strings.Fields(output) {
		switch strings.TrimSuffix(codecType, ",") {
		case "video":
			return MediaVideo
		case "audio":
			kind = MediaAudio
		}
	}
	return kind
}

// Decode extracts the audio of path into workDir as 16 bit PCM WAV.
func (d *FFmpegDecoder) Decode(ctx context.Context, path, workDir string) (string, error) {
	kind, err := d.Probe(ctx, path)
	if err != nil {
		return "", err
	}
	ffmpeg, err := binaryPath(d.FFmpegPath, "ffmpeg")
	if err != nil {
		return "", err
	}

	out := filepath.Join(workDir, extractedAudioName)
	args := []string{"-y", "-loglevel", "error", "-i", path}
	switch kind {
	case MediaVideo:
		args = append(args, "-vn")
	case MediaAudio:
	default:
		return "", fmt.Errorf("%w: %s has no audio or video stream", ErrUnsupportedMedia, path)
	}
	args = append(args, "-acodec", "pcm_s16le")
	if d.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(d.SampleRate))
	}
	args = append(args, out)

	log.Debugf("Running %s %s", ffmpeg, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: ffmpeg %s: %w: %s", ErrDecode, path, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
