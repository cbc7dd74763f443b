package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Lavi-Vu/toolTTS/internal/audio"
)

// Gemini's TTS models return bare PCM at this shape.
const (
	geminiSampleRate = 24000
	geminiChannels   = 1
	geminiBits       = 16
)

// GeminiEngine synthesizes speech through Google's Gemini TTS models.
type GeminiEngine struct {
	client *genai.Client
	model  string
}

func NewGeminiEngine(ctx context.Context, apiKey string, opts Options) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-preview-tts"
	}

	return &GeminiEngine{
		client: client,
		model:  model,
	}, nil
}

func (e *GeminiEngine) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("no text to synthesize")
	}

	voice := req.Voice
	if voice == "" {
		voice = "Kore"
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Text)}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	pcm, err := extractPCM(result)
	if err != nil {
		return nil, err
	}

	wav := audio.EncodeWAV(pcm, geminiSampleRate, geminiChannels, geminiBits)
	bytesPerSecond := geminiSampleRate * geminiChannels * geminiBits / 8
	duration := time.Duration(float64(len(pcm)) / float64(bytesPerSecond) * float64(time.Second))

	return &Result{Audio: wav, Format: "wav", Duration: duration}, nil
}

func extractPCM(result *genai.GenerateContentResponse) ([]byte, error) {
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no audio in synthesis response")
}

func (e *GeminiEngine) Voices() []Voice {
	return []Voice{
		{ID: "Kore", Name: "Kore", Gender: "female", Language: "multilingual"},
		{ID: "Puck", Name: "Puck", Gender: "male", Language: "multilingual"},
		{ID: "Charon", Name: "Charon", Gender: "male", Language: "multilingual"},
		{ID: "Fenrir", Name: "Fenrir", Gender: "male", Language: "multilingual"},
		{ID: "Aoede", Name: "Aoede", Gender: "female", Language: "multilingual"},
		{ID: "Leda", Name: "Leda", Gender: "female", Language: "multilingual"},
	}
}

func (e *GeminiEngine) Languages() []string {
	return []string{"multilingual"}
}

func (e *GeminiEngine) Available() bool {
	return true
}
