package subtitle

import (
	"fmt"
	"time"
)

// Compose runs the full pipeline for one synthesized segment: sentence
// split, proportional timing over the segment's measured duration, then
// cue assembly with indices 1..N. Cue times are millisecond-truncated so
// the rendered SRT reproduces them exactly.
func Compose(seg SpeechSegment, cfg Config) (*Timeline, error) {
	cues, err := buildCues(seg, cfg, 0, 1, false)
	if err != nil {
		return nil, err
	}
	return &Timeline{Cues: cues, Duration: seg.Duration}, nil
}

// ComposePodcast merges multiple speaker turns into one timeline. Each
// turn is timed against its own duration, then shifted by the cumulative
// duration of all prior turns plus any configured inter-turn gap. Cue
// text is prefixed with "[Speaker]: " when the turn names a speaker, and
// indices are renumbered contiguously across the whole podcast so the
// merged SRT stays valid.
//
// Any turn with a non-positive duration aborts the whole composition;
// no partial timeline is returned. The result's Duration is the
// cumulative offset after the last turn, which tells the audio
// concatenation side where the merged track ends.
func ComposePodcast(turns []SpeechSegment, cfg Config) (*Timeline, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("%w: no turns", ErrInvalidSegment)
	}
	for i, turn := range turns {
		if turn.Duration <= 0 {
			return nil, fmt.Errorf("turn %d: %w: duration %v",
				i, ErrInvalidSegment, turn.Duration)
		}
	}

	var cues []Cue
	var offset time.Duration
	for i, turn := range turns {
		turnCues, err := buildCues(turn, cfg, offset, len(cues)+1, true)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		cues = append(cues, turnCues...)

		offset += turn.Duration
		if i < len(turns)-1 {
			offset += cfg.TurnGap
		}
	}

	return &Timeline{Cues: cues, Duration: offset}, nil
}

func buildCues(seg SpeechSegment, cfg Config, offset time.Duration, firstIndex int, labeled bool) ([]Cue, error) {
	sentences := Segment(seg.Text, cfg)
	spans, err := Estimate(sentences, seg.Duration, cfg)
	if err != nil {
		return nil, err
	}

	cues := make([]Cue, len(spans))
	for i, span := range spans {
		text := sentences[i]
		if labeled && seg.Speaker != "" {
			text = "[" + seg.Speaker + "]: " + text
		}
		cues[i] = Cue{
			Index: firstIndex + i,
			Start: (offset + span.Start).Truncate(time.Millisecond),
			End:   (offset + span.End).Truncate(time.Millisecond),
			Text:  text,
		}
	}
	return cues, nil
}
