package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Concat joins per-turn audio files into one track, in input order.
// All inputs should share a format; podcast synthesis writes every turn
// through the same engine so that holds in practice.
func Concat(ctx context.Context, inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to concatenate")
	}

	for _, in := range inputs {
		if _, err := os.Stat(in); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", in)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	streams := make([]*ffmpeg.Stream, len(inputs))
	for i, in := range inputs {
		streams[i] = ffmpeg.Input(in)
	}

	err := ffmpeg.Concat(streams, ffmpeg.KwArgs{"v": 0, "a": 1}).
		Output(outputPath).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("audio concatenation failed: %w", err)
	}

	return nil
}

// ffprobe JSON shape, format section only.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration measures an on-disk audio file with ffprobe. Duration
// works on in-memory bytes for WAV and MP3; this covers everything else.
func ProbeDuration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	out, err := ffmpeg.Probe(filePath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
