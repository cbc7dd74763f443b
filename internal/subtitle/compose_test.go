package subtitle

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestComposeEndToEnd(t *testing.T) {
	seg := SpeechSegment{
		Text:     "Hello world. This is the first sentence. How are you doing today?",
		Duration: 5200 * time.Millisecond,
	}

	timeline, err := Compose(seg, DefaultConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if len(timeline.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(timeline.Cues))
	}
	if timeline.Duration != seg.Duration {
		t.Errorf("timeline duration %v, want %v", timeline.Duration, seg.Duration)
	}

	first := timeline.Cues[0]
	last := timeline.Cues[2]
	if first.Start != 0 {
		t.Errorf("first cue starts at %v, want 0", first.Start)
	}
	if last.End != 5200*time.Millisecond {
		t.Errorf("last cue ends at %v, want 5.2s", last.End)
	}

	srt, err := timeline.SRT()
	if err != nil {
		t.Fatalf("SRT render failed: %v", err)
	}

	want := "1\n" +
		"00:00:00,000 --> 00:00:00,990\n" +
		"Hello world.\n" +
		"\n" +
		"2\n" +
		"00:00:00,990 --> 00:00:03,219\n" +
		"This is the first sentence.\n" +
		"\n" +
		"3\n" +
		"00:00:03,219 --> 00:00:05,200\n" +
		"How are you doing today?\n" +
		"\n"

	if srt != want {
		t.Errorf("rendered SRT mismatch:\n got %q\nwant %q", srt, want)
	}
}

func TestComposeCueInvariants(t *testing.T) {
	seg := SpeechSegment{
		Text:     "One. Two! Three? Four. Five and six and seven. Eight.",
		Duration: 12345 * time.Millisecond,
	}

	timeline, err := Compose(seg, DefaultConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	assertTimelineInvariants(t, timeline)
}

func TestComposeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		seg  SpeechSegment
	}{
		{"zero duration", SpeechSegment{Text: "Hello.", Duration: 0}},
		{"negative duration", SpeechSegment{Text: "Hello.", Duration: -time.Second}},
		{"empty text", SpeechSegment{Text: "   ", Duration: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline, err := Compose(tt.seg, DefaultConfig())
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if timeline != nil {
				t.Error("expected no timeline on error")
			}
		})
	}
}

func TestComposePodcastOffsets(t *testing.T) {
	turns := []SpeechSegment{
		{Text: "Welcome to the show. Glad you could join.", Duration: 2500 * time.Millisecond, Speaker: "Host"},
		{Text: "Happy to be here.", Duration: 2600 * time.Millisecond, Speaker: "Guest"},
	}

	timeline, err := ComposePodcast(turns, DefaultConfig())
	if err != nil {
		t.Fatalf("ComposePodcast failed: %v", err)
	}
	assertTimelineInvariants(t, timeline)

	// The second turn's first cue starts exactly at the first turn's
	// duration, however many sentences turn one produced.
	var secondTurnFirst *Cue
	for i := range timeline.Cues {
		if strings.HasPrefix(timeline.Cues[i].Text, "[Guest]: ") {
			secondTurnFirst = &timeline.Cues[i]
			break
		}
	}
	if secondTurnFirst == nil {
		t.Fatal("no cue for the second speaker")
	}
	if secondTurnFirst.Start != 2500*time.Millisecond {
		t.Errorf("second turn starts at %v, want 2.5s", secondTurnFirst.Start)
	}

	if want := 5100 * time.Millisecond; timeline.Duration != want {
		t.Errorf("podcast duration %v, want %v", timeline.Duration, want)
	}

	// Indices are renumbered globally with no gaps.
	for i, cue := range timeline.Cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d has index %d", i, cue.Index)
		}
	}
}

func TestComposePodcastTurnGap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TurnGap = 200 * time.Millisecond

	turns := []SpeechSegment{
		{Text: "First turn.", Duration: 2500 * time.Millisecond, Speaker: "A"},
		{Text: "Second turn.", Duration: 2600 * time.Millisecond, Speaker: "B"},
	}

	timeline, err := ComposePodcast(turns, cfg)
	if err != nil {
		t.Fatalf("ComposePodcast failed: %v", err)
	}

	second := timeline.Cues[len(timeline.Cues)-1]
	if want := 2700 * time.Millisecond; second.Start != want {
		t.Errorf("second turn starts at %v, want %v", second.Start, want)
	}
	if want := 5300 * time.Millisecond; timeline.Duration != want {
		t.Errorf("podcast duration %v, want %v", timeline.Duration, want)
	}
}

func TestComposePodcastSpeakerLabels(t *testing.T) {
	turns := []SpeechSegment{
		{Text: "Labeled.", Duration: time.Second, Speaker: "Host"},
		{Text: "Unlabeled.", Duration: time.Second},
	}

	timeline, err := ComposePodcast(turns, DefaultConfig())
	if err != nil {
		t.Fatalf("ComposePodcast failed: %v", err)
	}

	if got := timeline.Cues[0].Text; got != "[Host]: Labeled." {
		t.Errorf("labeled cue text %q", got)
	}
	if got := timeline.Cues[1].Text; got != "Unlabeled." {
		t.Errorf("unlabeled cue text %q", got)
	}
}

func TestComposePodcastInvalidTurn(t *testing.T) {
	turns := []SpeechSegment{
		{Text: "Fine.", Duration: time.Second, Speaker: "A"},
		{Text: "Broken.", Duration: 0, Speaker: "B"},
	}

	timeline, err := ComposePodcast(turns, DefaultConfig())
	if !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("expected ErrInvalidSegment, got %v", err)
	}
	if timeline != nil {
		t.Error("expected no timeline on error")
	}
	if err == nil || !strings.Contains(err.Error(), "turn 1") {
		t.Errorf("error should identify the failing turn, got %v", err)
	}
}

func TestComposePodcastNoTurns(t *testing.T) {
	if _, err := ComposePodcast(nil, DefaultConfig()); !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("expected ErrInvalidSegment, got %v", err)
	}
}

func assertTimelineInvariants(t *testing.T, timeline *Timeline) {
	t.Helper()

	if len(timeline.Cues) == 0 {
		t.Fatal("timeline has no cues")
	}
	if timeline.Cues[0].Start < 0 {
		t.Errorf("first cue starts at %v", timeline.Cues[0].Start)
	}
	for i := 0; i < len(timeline.Cues)-1; i++ {
		if timeline.Cues[i].End > timeline.Cues[i+1].Start {
			t.Errorf("cue %d ends at %v after cue %d starts at %v",
				i, timeline.Cues[i].End, i+1, timeline.Cues[i+1].Start)
		}
	}
	for i, cue := range timeline.Cues {
		if cue.End <= cue.Start {
			t.Errorf("cue %d has end %v not after start %v", i, cue.End, cue.Start)
		}
	}
}
