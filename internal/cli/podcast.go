package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lavi-Vu/toolTTS/internal/audio"
	"github.com/Lavi-Vu/toolTTS/internal/engine"
	"github.com/Lavi-Vu/toolTTS/internal/script"
	"github.com/Lavi-Vu/toolTTS/internal/subtitle"
)

var podcastCmd = &cobra.Command{
	Use:   "podcast [script_file]",
	Short: "Synthesize a multi-speaker script into one audio track and SRT file",
	Long: `Synthesize a podcast script into a single audio track with one
merged, time-synchronized subtitle file.

The script has one speaker turn per line, written as "Speaker: text".
Each turn is synthesized separately (in parallel), timed against its own
audio duration, and shifted onto a shared timeline; cue text carries a
[Speaker] label and cue numbering runs through the whole episode.

Examples:
  tooltts podcast episode.txt
  tooltts podcast episode.txt --voice "Host=nova" --voice "Guest=onyx"
  tooltts podcast episode.txt --engine gemini --turn-gap 300ms -o out/episode.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runPodcast,
}

func init() {
	rootCmd.AddCommand(podcastCmd)

	podcastCmd.Flags().
		StringP("engine", "e", "openai", "Synthesis engine (openai, gemini)")
	podcastCmd.Flags().
		StringP("api-key", "k", "", "Engine API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	podcastCmd.Flags().
		String("model", "", "Engine-specific model override")
	podcastCmd.Flags().
		StringArray("voice", nil, `Per-speaker voice mapping, e.g. "Host=nova" (repeatable)`)
	podcastCmd.Flags().
		Int("concurrency", 3, "Number of parallel synthesis workers")
	podcastCmd.Flags().
		Duration("turn-gap", 0, "Silence between speaker turns on the subtitle timeline")
	podcastCmd.Flags().
		Duration("sentence-gap", 0, "Readability pause carved out between subtitle cues")
	podcastCmd.Flags().
		Bool("no-concat", false, "Skip merging the per-turn audio into one track")
}

// turnResult carries one synthesized turn back from the worker pool.
type turnResult struct {
	Index    int
	Audio    []byte
	Format   string
	Duration time.Duration
	Err      error
}

func runPodcast(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	scriptPath := args[0]

	file, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	lines, err := script.Parse(file)
	file.Close()
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("script has no speaker turns: %s", scriptPath)
	}

	provider, _ := cmd.Flags().GetString("engine")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	voiceFlags, _ := cmd.Flags().GetStringArray("voice")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	turnGap, _ := cmd.Flags().GetDuration("turn-gap")
	sentenceGap, _ := cmd.Flags().GetDuration("sentence-gap")
	noConcat, _ := cmd.Flags().GetBool("no-concat")
	outputPath, _ := cmd.Flags().GetString("output")

	voices, err := parseVoiceMappings(voiceFlags)
	if err != nil {
		return err
	}

	apiKey = resolveAPIKey(apiKey, engine.Provider(provider))
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or the engine's environment variable")
	}

	eng, err := engine.Factory(ctx, engine.Provider(provider), apiKey, engine.Options{Model: model})
	if err != nil {
		return err
	}

	logger.Infow("Synthesizing podcast",
		"script", scriptPath,
		"turns", len(lines),
		"speakers", strings.Join(script.Speakers(lines), ", "),
		"engine", provider,
		"concurrency", concurrency,
	)

	results, err := synthesizeTurns(ctx, eng, lines, voices, concurrency)
	if err != nil {
		return err
	}

	cfg := subtitle.DefaultConfig()
	cfg.SentenceGap = sentenceGap
	cfg.TurnGap = turnGap

	turns := make([]subtitle.SpeechSegment, len(lines))
	for i, line := range lines {
		turns[i] = subtitle.SpeechSegment{
			Text:     line.Text,
			Duration: results[i].Duration,
			Speaker:  line.Speaker,
		}
	}

	timeline, err := subtitle.ComposePodcast(turns, cfg)
	if err != nil {
		return fmt.Errorf("failed to build podcast timeline: %w", err)
	}
	srt, err := timeline.SRT()
	if err != nil {
		return fmt.Errorf("failed to render subtitles: %w", err)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath))
		outputPath = base + "." + results[0].Format
	}
	srtPath := srtPathFor(outputPath)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if noConcat {
		if err := writeTurnFiles(outputPath, results); err != nil {
			return err
		}
	} else {
		if err := concatTurns(ctx, outputPath, results); err != nil {
			return err
		}
	}

	if err := os.WriteFile(srtPath, []byte(srt), 0644); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	logger.Infow("Podcast saved",
		"audio", outputPath,
		"srt", srtPath,
		"duration", timeline.Duration.String(),
		"cues", len(timeline.Cues),
	)

	return nil
}

// synthesizeTurns runs the per-turn synthesis through a worker pool.
// Completion order is irrelevant; results come back sorted by turn index
// so the composed timeline follows the script order.
func synthesizeTurns(
	ctx context.Context,
	eng engine.Engine,
	lines []script.Line,
	voices map[string]string,
	concurrency int,
) ([]turnResult, error) {
	if concurrency <= 0 {
		concurrency = 3
	}

	type job struct {
		index int
		line  script.Line
	}

	workChan := make(chan job, len(lines))
	resultChan := make(chan turnResult, len(lines))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for j := range workChan {
				res, err := eng.Synthesize(ctx, engine.Request{
					Text:  j.line.Text,
					Voice: voices[j.line.Speaker],
				})
				if err != nil {
					resultChan <- turnResult{Index: j.index, Err: err}
					continue
				}

				duration := res.Duration
				if duration == 0 {
					if d, derr := audio.Duration(res.Audio); derr == nil {
						duration = d
					} else {
						duration = audio.EstimateFromText(j.line.Text)
					}
				}

				resultChan <- turnResult{
					Index:    j.index,
					Audio:    res.Audio,
					Format:   res.Format,
					Duration: duration,
				}
			}
		})
	}

	for i, line := range lines {
		workChan <- job{index: i, line: line}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]turnResult, 0, len(lines))
	for result := range resultChan {
		if result.Err != nil {
			return nil, fmt.Errorf("turn %d failed: %w", result.Index, result.Err)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results, nil
}

// concatTurns writes each turn to a temp file and merges them in script
// order into the final track.
func concatTurns(ctx context.Context, outputPath string, results []turnResult) error {
	tempDir, err := os.MkdirTemp("", "tooltts-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inputs := make([]string, len(results))
	for i, res := range results {
		inputs[i] = filepath.Join(tempDir, fmt.Sprintf("turn-%03d.%s", i, res.Format))
		if err := os.WriteFile(inputs[i], res.Audio, 0644); err != nil {
			return fmt.Errorf("failed to write turn %d: %w", i, err)
		}
	}

	if err := audio.Concat(ctx, inputs, outputPath); err != nil {
		return err
	}
	return nil
}

// writeTurnFiles keeps the per-turn audio as numbered siblings of the
// output path instead of merging.
func writeTurnFiles(outputPath string, results []turnResult) error {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	for i, res := range results {
		path := fmt.Sprintf("%s-turn-%03d.%s", base, i, res.Format)
		if err := os.WriteFile(path, res.Audio, 0644); err != nil {
			return fmt.Errorf("failed to write turn %d: %w", i, err)
		}
	}
	return nil
}

// parseVoiceMappings turns repeated "Speaker=voice" flags into a lookup.
func parseVoiceMappings(flags []string) (map[string]string, error) {
	voices := make(map[string]string, len(flags))
	for _, f := range flags {
		speaker, voice, ok := strings.Cut(f, "=")
		speaker = strings.TrimSpace(speaker)
		voice = strings.TrimSpace(voice)
		if !ok || speaker == "" || voice == "" {
			return nil, fmt.Errorf("invalid voice mapping %q: expected \"Speaker=voice\"", f)
		}
		voices[speaker] = voice
	}
	return voices, nil
}
