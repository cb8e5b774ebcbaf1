package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

// freqtrace reads an audio or video file, tracks its dominant frequency over
// time and writes the samples as a time/amplitude text series.
//
// WAV files are read directly. Headerless 16 bit little endian mono files
// (.raw, .pcm) need --rate. Anything else is converted with ffmpeg first.
//
// Flag values may also come from a YAML file given with --config, keyed by
// flag name.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	var logLevel string

	sourceFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Audio or video file to analyze",
				Required: true,
			},
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:    "work-dir",
				Usage:   "Directory for audio extracted from other containers",
				Value:   os.TempDir(),
				EnvVars: []string{"FREQTRACE_WORK_DIR"},
			}),
			altsrc.NewIntFlag(&cli.IntFlag{
				Name:    "rate",
				Aliases: []string{"r"},
				Usage:   "Sample rate of raw input, or target rate when decoding with ffmpeg",
				EnvVars: []string{"FREQTRACE_RATE"},
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:    "ffmpeg",
				Usage:   "Path of the ffmpeg binary",
				EnvVars: []string{"FREQTRACE_FFMPEG"},
			}),
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:    "ffprobe",
				Usage:   "Path of the ffprobe binary",
				EnvVars: []string{"FREQTRACE_FFPROBE"},
			}),
		}
	}

	analyzeFlags := append(sourceFlags(),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Time/amplitude series to write",
			Value:   "time_frequency_data.txt",
			EnvVars: []string{"FREQTRACE_OUTPUT"},
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "chart",
			Usage: "HTML chart of the waveform and dominant frequency, empty to skip",
			Value: "profile.html",
		}),
		altsrc.NewFloat64Flag(&cli.Float64Flag{
			Name:  "window",
			Usage: "Analysis window length in seconds",
			Value: defaultWindowSeconds,
		}),
		altsrc.NewFloat64Flag(&cli.Float64Flag{
			Name:  "hop",
			Usage: "Distance between window starts in seconds",
			Value: defaultHopSeconds,
		}),
		altsrc.NewFloat64Flag(&cli.Float64Flag{
			Name:  "band-low",
			Usage: "Lower edge in Hz of an optional band-pass applied before analysis",
		}),
		altsrc.NewFloat64Flag(&cli.Float64Flag{
			Name:  "band-high",
			Usage: "Upper edge in Hz of an optional band-pass applied before analysis",
		}),
	)

	spectrogramFlags := append(sourceFlags(),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  "chart",
			Usage: "HTML spectrogram heat map",
			Value: "spectrogram.html",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "segment",
			Usage: "Samples per spectrogram segment",
			Value: defaultSegmentLength,
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:  "overlap",
			Usage: "Samples shared by adjacent segments, 0 for an eighth of a segment",
		}),
	)

	probeFlags := sourceFlags()

	return &cli.App{
		Name:                 "freqtrace",
		Usage:                "Track the dominant frequency of audio over time",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "One of trace, debug, info, warn, error",
				Value:       "info",
				Destination: &logLevel,
				EnvVars:     []string{"FREQTRACE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with flag values",
				EnvVars: []string{"FREQTRACE_CONFIG"},
			},
		},
		Before: func(cCtx *cli.Context) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "analyze",
				Aliases: []string{"a"},
				Usage:   "Extract the dominant frequency profile and export the time/amplitude series",
				Flags:   analyzeFlags,
				Before:  altsrc.InitInputSourceWithContext(analyzeFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action:  runAnalyze,
			},
			{
				Name:    "spectrogram",
				Aliases: []string{"s"},
				Usage:   "Render a spectrogram heat map",
				Flags:   spectrogramFlags,
				Before:  altsrc.InitInputSourceWithContext(spectrogramFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action:  runSpectrogram,
			},
			{
				Name:    "probe",
				Aliases: []string{"p"},
				Usage:   "Print whether a file holds video, audio or neither",
				Flags:   probeFlags,
				Before:  altsrc.InitInputSourceWithContext(probeFlags, altsrc.NewYamlSourceFromFlagFunc("config")),
				Action:  runProbe,
			},
		},
	}
}

func newDecoder(cCtx *cli.Context) *FFmpegDecoder {
	return &FFmpegDecoder{
		FFmpegPath:  cCtx.String("ffmpeg"),
		FFprobePath: cCtx.String("ffprobe"),
		SampleRate:  cCtx.Int("rate"),
	}
}

func loadSignalFromFlags(cCtx *cli.Context) (Signal, error) {
	fileName := cCtx.String("file")
	log.Infof("Handling file name: %s", fileName)
	return loadSignal(cCtx.Context, fileName, sourceOptions{
		RawSampleRate: cCtx.Int("rate"),
		WorkDir:       cCtx.String("work-dir"),
		Decoder:       newDecoder(cCtx),
	})
}

func runAnalyze(cCtx *cli.Context) error {
	sig, err := loadSignalFromFlags(cCtx)
	if err != nil {
		return err
	}
	cfg := AnalysisConfig{
		WindowSeconds: cCtx.Float64("window"),
		HopSeconds:    cCtx.Float64("hop"),
		BandLowHz:     cCtx.Float64("band-low"),
		BandHighHz:    cCtx.Float64("band-high"),
	}
	profile, err := analyze(sig, cfg)
	if err != nil {
		return err
	}
	log.Infof("Profile: %v", profile)
	if len(profile.Points) == 0 {
		log.Warnf("%d samples do not fill one %d sample window, profile is empty", len(sig.Samples), profile.WindowSize)
	}

	if chart := cCtx.String("chart"); chart != "" {
		if err := drawProfile(chart, profile); err != nil {
			return err
		}
	}

	output := cCtx.String("output")
	if err := exportTimeSeries(output, sig); err != nil {
		return err
	}
	log.Infof("Time/amplitude series written to %s", output)
	return nil
}

func runSpectrogram(cCtx *cli.Context) error {
	sig, err := loadSignalFromFlags(cCtx)
	if err != nil {
		return err
	}
	spectrogram, err := buildSpectrogram(sig, SpectrogramConfig{
		SegmentLength: cCtx.Int("segment"),
		Overlap:       cCtx.Int("overlap"),
	})
	if err != nil {
		return err
	}
	log.Infof("Spectrogram of %d segments by %d bins", len(spectrogram.Times), len(spectrogram.Frequencies))
	return drawSpectrogram(cCtx.String("chart"), spectrogram)
}

func runProbe(cCtx *cli.Context) error {
	kind, err := newDecoder(cCtx).Probe(cCtx.Context, cCtx.String("file"))
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", kind)
	return nil
}
