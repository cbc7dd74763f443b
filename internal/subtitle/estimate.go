package subtitle

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Span is one sentence's slot on a segment's local timeline.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// Estimate apportions total across the sentences proportionally to their
// character length. Speech engines pace roughly uniformly per character
// at a fixed rate, so the text-length ratio is the only free parameter;
// any rate multiplier is already baked into total by the synthesis side.
//
// Starts accumulate from zero and the last sentence's end is pinned
// exactly to total, so floating-point drift never leaks into the final
// timestamp. When every sentence is empty the split is equal instead.
func Estimate(sentences []string, total time.Duration, cfg Config) ([]Span, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total duration %v", ErrInvalidInput, total)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: no sentences to time", ErrInvalidInput)
	}

	lengths := make([]int, len(sentences))
	sum := 0
	for i, s := range sentences {
		lengths[i] = utf8.RuneCountInString(s)
		sum += lengths[i]
	}

	spans := make([]Span, len(sentences))
	var cursor time.Duration
	for i := range sentences {
		var d time.Duration
		if sum == 0 {
			d = total / time.Duration(len(sentences))
		} else {
			d = time.Duration(float64(total) * float64(lengths[i]) / float64(sum))
		}
		spans[i] = Span{Start: cursor, End: cursor + d}
		cursor += d
	}
	spans[len(spans)-1].End = total

	applySentenceGap(spans, cfg.SentenceGap)

	return spans, nil
}

// applySentenceGap opens a readability pause between adjacent spans,
// taking half from each side. A pair is left contiguous when either
// side's duration would drop to zero or below.
func applySentenceGap(spans []Span, gap time.Duration) {
	if gap <= 0 {
		return
	}
	half := gap / 2
	for i := 0; i < len(spans)-1; i++ {
		left := spans[i].End - spans[i].Start
		right := spans[i+1].End - spans[i+1].Start
		if left <= half || right <= half {
			continue
		}
		spans[i].End -= half
		spans[i+1].Start += half
	}
}
