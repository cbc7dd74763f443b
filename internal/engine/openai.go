package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEngine synthesizes speech through the OpenAI audio API.
type OpenAIEngine struct {
	client openai.Client
	model  string
}

func NewOpenAIEngine(apiKey string, opts Options) (*OpenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini-tts"
	}

	return &OpenAIEngine{
		client: client,
		model:  model,
	}, nil
}

func (e *OpenAIEngine) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("no text to synthesize")
	}

	voice := req.Voice
	if voice == "" {
		voice = "alloy"
	}

	params := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(e.model),
		Input:          req.Text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	// The API accepts 0.25..4.0; volume has no knob on this endpoint.
	if req.Rate > 0 && req.Rate != 1.0 {
		params.Speed = openai.Float(req.Rate)
	}

	resp, err := e.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}

	return &Result{Audio: data, Format: "mp3"}, nil
}

func (e *OpenAIEngine) Voices() []Voice {
	return []Voice{
		{ID: "alloy", Name: "Alloy", Gender: "neutral", Language: "multilingual"},
		{ID: "echo", Name: "Echo", Gender: "male", Language: "multilingual"},
		{ID: "fable", Name: "Fable", Gender: "neutral", Language: "multilingual"},
		{ID: "onyx", Name: "Onyx", Gender: "male", Language: "multilingual"},
		{ID: "nova", Name: "Nova", Gender: "female", Language: "multilingual"},
		{ID: "shimmer", Name: "Shimmer", Gender: "female", Language: "multilingual"},
	}
}

func (e *OpenAIEngine) Languages() []string {
	return []string{"multilingual"}
}

func (e *OpenAIEngine) Available() bool {
	return true
}
