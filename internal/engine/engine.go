// Package engine wraps third-party speech synthesis providers behind a
// single capability interface. The subtitle core never sees an Engine;
// it only consumes the text and measured duration an engine produces.
package engine

import (
	"context"
	"fmt"
	"time"
)

// Voice describes one synthesis voice an engine offers.
type Voice struct {
	ID       string
	Name     string
	Gender   string
	Language string
}

// Request is one synthesis call.
type Request struct {
	Text   string
	Voice  string
	Rate   float64 // speaking rate multiplier, 1.0 = normal
	Volume float64 // 0..1, engines that cannot apply it ignore it
}

// Result is the synthesized audio. Duration is zero when the engine
// cannot report it; callers then measure the bytes themselves.
type Result struct {
	Audio    []byte
	Format   string // file extension without the dot: "mp3", "wav"
	Duration time.Duration
}

// Engine is the pluggable synthesis capability.
type Engine interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)
	Voices() []Voice
	Languages() []string
	Available() bool
}

// Provider selects a synthesis backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options tune engine construction.
type Options struct {
	Model string
}

// Factory creates an engine for the given provider.
func Factory(ctx context.Context, provider Provider, apiKey string, opts Options) (Engine, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIEngine(apiKey, opts)
	case ProviderGemini:
		return NewGeminiEngine(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
