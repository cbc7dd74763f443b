// Package script parses the podcast script format: one speaker turn per
// line, written as "SpeakerName: utterance text".
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line is one speaker turn from a podcast script.
type Line struct {
	Speaker string
	Text    string
}

// Parse reads a script, one turn per line. Blank lines and lines
// starting with '#' are skipped. A non-blank line without a speaker
// separator is an error naming the line number.
func Parse(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)

	var lines []Line
	lineNum := 0

	for scanner.Scan() {
		raw := scanner.Text()
		lineNum++

		if lineNum == 1 {
			raw = strings.TrimPrefix(raw, "\uFEFF")
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		speaker, text, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing \"Speaker:\" separator", lineNum)
		}

		speaker = strings.TrimSpace(speaker)
		text = strings.TrimSpace(text)
		if speaker == "" {
			return nil, fmt.Errorf("line %d: empty speaker name", lineNum)
		}
		if text == "" {
			return nil, fmt.Errorf("line %d: empty utterance for speaker %q", lineNum, speaker)
		}

		lines = append(lines, Line{Speaker: speaker, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return lines, nil
}

// Speakers returns the distinct speaker names in order of first
// appearance.
func Speakers(lines []Line) []string {
	seen := make(map[string]struct{}, len(lines))
	var speakers []string
	for _, line := range lines {
		if _, ok := seen[line.Speaker]; ok {
			continue
		}
		seen[line.Speaker] = struct{}{}
		speakers = append(speakers, line.Speaker)
	}
	return speakers
}
