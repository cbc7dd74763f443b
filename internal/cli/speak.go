package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lavi-Vu/toolTTS/internal/audio"
	"github.com/Lavi-Vu/toolTTS/internal/engine"
	"github.com/Lavi-Vu/toolTTS/internal/subtitle"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text_or_file]",
	Short: "Synthesize speech and write audio plus a synchronized SRT file",
	Long: `Synthesize the given text (or the contents of a text file) into
spoken audio, then derive time-synchronized subtitles from the actual
audio duration and write them as an .srt file next to the audio.

Examples:
  tooltts speak "Hello world. This is a test."
  tooltts speak article.txt --engine openai --voice nova
  tooltts speak script.txt --engine gemini --rate 1.2 -o out/speech.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().
		StringP("engine", "e", "openai", "Synthesis engine (openai, gemini)")
	speakCmd.Flags().
		StringP("api-key", "k", "", "Engine API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	speakCmd.Flags().
		String("model", "", "Engine-specific model override")
	speakCmd.Flags().
		String("voice", "", "Voice ID (engine default when empty)")
	speakCmd.Flags().
		Float64P("rate", "r", 1.0, "Speaking rate multiplier")
	speakCmd.Flags().
		Float64("volume", 1.0, "Volume 0..1 (ignored by engines without a volume knob)")
	speakCmd.Flags().
		Duration("sentence-gap", 0, "Readability pause carved out between subtitle cues")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	text, err := resolveText(args[0])
	if err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("engine")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	voice, _ := cmd.Flags().GetString("voice")
	rate, _ := cmd.Flags().GetFloat64("rate")
	volume, _ := cmd.Flags().GetFloat64("volume")
	sentenceGap, _ := cmd.Flags().GetDuration("sentence-gap")
	outputPath, _ := cmd.Flags().GetString("output")

	apiKey = resolveAPIKey(apiKey, engine.Provider(provider))
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or the engine's environment variable")
	}

	eng, err := engine.Factory(ctx, engine.Provider(provider), apiKey, engine.Options{Model: model})
	if err != nil {
		return err
	}

	logger.Infow("Synthesizing speech",
		"engine", provider,
		"voice", voice,
		"rate", rate,
		"characters", len(text),
	)

	result, err := eng.Synthesize(ctx, engine.Request{
		Text:   text,
		Voice:  voice,
		Rate:   rate,
		Volume: volume,
	})
	if err != nil {
		return err
	}

	duration := measureDuration(result, text)

	cfg := subtitle.DefaultConfig()
	cfg.SentenceGap = sentenceGap

	timeline, err := subtitle.Compose(subtitle.SpeechSegment{
		Text:     text,
		Duration: duration,
		Rate:     rate,
		Volume:   volume,
	}, cfg)
	if err != nil {
		return fmt.Errorf("failed to build subtitle timeline: %w", err)
	}

	srt, err := timeline.SRT()
	if err != nil {
		return fmt.Errorf("failed to render subtitles: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(result.Format)
	}
	srtPath := srtPathFor(outputPath)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, result.Audio, 0644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	if err := os.WriteFile(srtPath, []byte(srt), 0644); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	logger.Infow("Files saved",
		"audio", outputPath,
		"srt", srtPath,
		"duration", duration.String(),
		"cues", len(timeline.Cues),
	)

	return nil
}

// resolveText treats the argument as a file path when one exists, and as
// literal text otherwise.
func resolveText(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}
	if strings.TrimSpace(arg) == "" {
		return "", fmt.Errorf("no text to speak")
	}
	return arg, nil
}

// measureDuration prefers the engine's reported duration, then header
// math on the audio bytes, then the character-pace estimate.
func measureDuration(result *engine.Result, text string) time.Duration {
	if result.Duration > 0 {
		return result.Duration
	}
	if d, err := audio.Duration(result.Audio); err == nil {
		return d
	}
	d := audio.EstimateFromText(text)
	logger.Warnw("Could not measure audio, falling back to text estimate",
		"estimate", d.String(),
	)
	return d
}

func resolveAPIKey(flagValue string, provider engine.Provider) string {
	if flagValue != "" {
		return flagValue
	}
	switch provider {
	case engine.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case engine.ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

func defaultOutputPath(format string) string {
	return fmt.Sprintf("speech-%s.%s", time.Now().Format("20060102-150405"), format)
}

func srtPathFor(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".srt"
}
