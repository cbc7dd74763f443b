package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RenderSRT serializes cues as SRT text: index line, timestamp line,
// text line(s), blank separator. Timestamps are millisecond-truncated
// and the hour field grows past two digits when a timeline runs long.
//
// The cue sequence is validated first so a malformed cue can never
// produce a truncated subtitle file: indices must run 1..N without
// gaps, starts must be non-negative, and each end must follow its start.
func RenderSRT(cues []Cue) (string, error) {
	for i, cue := range cues {
		if cue.Index != i+1 {
			return "", fmt.Errorf("%w: index %d at position %d, want %d",
				ErrFormat, cue.Index, i, i+1)
		}
		if cue.Start < 0 {
			return "", fmt.Errorf("%w: cue %d starts at %v", ErrFormat, cue.Index, cue.Start)
		}
		if cue.End <= cue.Start {
			return "", fmt.Errorf("%w: cue %d ends at %v, starts at %v",
				ErrFormat, cue.Index, cue.End, cue.Start)
		}
	}

	var sb strings.Builder
	for _, cue := range cues {
		sb.WriteString(strconv.Itoa(cue.Index))
		sb.WriteString("\n")
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		sb.WriteString("\n")
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// FormatTimestamp renders a duration as HH:MM:SS,mmm. Milliseconds are
// truncated, not rounded, so formatting never moves a cue forward.
func FormatTimestamp(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	millis := int(d/time.Millisecond) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

var timestampRegex = regexp.MustCompile(
	`(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})`,
)

// ParseSRT reads SRT text back into cues. Together with RenderSRT it
// round-trips any valid cue sequence at millisecond precision.
func ParseSRT(r io.Reader) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)

	var current *Cue
	var textLines []string
	haveTiming := false
	lineNum := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
		haveTiming = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, fmt.Errorf("line %d: expected cue index, got %q", lineNum, line)
			}
			current = &Cue{Index: index}
			continue
		}

		if !haveTiming {
			matches := timestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				return nil, fmt.Errorf("line %d: expected timestamp line, got %q", lineNum, line)
			}
			start, err := parseTimestamp(matches[1], matches[2], matches[3], matches[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid start timestamp: %w", lineNum, err)
			}
			end, err := parseTimestamp(matches[5], matches[6], matches[7], matches[8])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid end timestamp: %w", lineNum, err)
			}
			current.Start = start
			current.End = end
			haveTiming = true
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read SRT text: %w", err)
	}

	return cues, nil
}

func parseTimestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
