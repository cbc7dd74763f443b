package subtitle

import (
	"time"
)

// Cue is a single subtitle entry on the output timeline.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// SpeechSegment is one synthesized utterance: the spoken text plus the
// actual audio duration reported by the synthesis side. The engine that
// produced the audio is irrelevant here; timing only needs the text and
// the measured duration.
type SpeechSegment struct {
	Text     string
	Duration time.Duration
	Speaker  string
	Rate     float64 // speaking rate multiplier, already reflected in Duration
	Volume   float64 // 0..1, passed through for the synthesis side
}

// Timeline is the ordered cue sequence for one rendered SRT output.
// Duration is the cumulative end of the timeline and is what podcast
// composition uses to chain the next segment.
type Timeline struct {
	Cues     []Cue
	Duration time.Duration
}

// SRT renders the timeline's cues as SRT text.
func (t *Timeline) SRT() (string, error) {
	return RenderSRT(t.Cues)
}

// Config carries the fixed tuning data for segmentation and timing.
// It is passed explicitly into every entry point; there is no shared
// mutable state anywhere in this package.
type Config struct {
	// Abbreviations are tokens that suppress a sentence break after a
	// period. Matched case-insensitively, trailing period ignored.
	Abbreviations []string

	// SentenceGap is carved out between adjacent cues of one segment,
	// half from each side. Zero disables it.
	SentenceGap time.Duration

	// TurnGap is the silence inserted between podcast turns.
	TurnGap time.Duration
}

func DefaultConfig() Config {
	return Config{
		Abbreviations: []string{
			"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st",
			"etc", "e.g", "i.e", "vs", "cf", "al",
			"inc", "ltd", "co", "corp",
			"jan", "feb", "mar", "apr", "jun", "jul", "aug",
			"sep", "sept", "oct", "nov", "dec",
		},
	}
}
