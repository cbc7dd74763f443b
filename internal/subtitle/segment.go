package subtitle

import (
	"strings"
	"unicode"
)

// Segment splits text into an ordered sequence of sentences. It is a
// pure function: the same text and config always produce the same split.
//
// Terminal punctuation (. ! ?) marks a candidate boundary. A run of
// consecutive terminal characters counts as one candidate. The candidate
// is rejected when a lone period follows a known abbreviation or a
// single-letter initial, or when the text after it does not look like
// the start of a new sentence (end of text, uppercase letter, quote, or
// opening bracket). That second rule keeps decimal numbers and
// mid-clause ellipses intact.
//
// Text without any terminal punctuation comes back as one sentence.
// Empty or whitespace-only input yields nil.
func Segment(text string, cfg Config) []string {
	runes := []rune(text)
	abbrevs := abbreviationSet(cfg.Abbreviations)

	var sentences []string
	last := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		// Swallow the whole punctuation run, e.g. "?!" or "...".
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}

		if isBoundary(runes, i, end, abbrevs) {
			// Trailing quotes and brackets belong to the sentence.
			tail := end
			for tail+1 < len(runes) && isClosing(runes[tail+1]) {
				tail++
			}

			if s := strings.TrimSpace(string(runes[last : tail+1])); s != "" {
				sentences = append(sentences, s)
			}
			last = tail + 1
			i = tail
		} else {
			i = end
		}
	}

	if s := strings.TrimSpace(string(runes[last:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// isBoundary reports whether the punctuation run runes[punctStart..punctEnd]
// ends a sentence.
func isBoundary(runes []rune, punctStart, punctEnd int, abbrevs map[string]struct{}) bool {
	// Abbreviation suppression only applies to a lone period.
	if runes[punctStart] == '.' && punctStart == punctEnd {
		if word := precedingToken(runes, punctStart); word != "" {
			w := strings.ToLower(strings.TrimSuffix(word, "."))
			if _, ok := abbrevs[w]; ok {
				return false
			}
			// Single-letter initials ("J. Smith") and multi-part
			// abbreviations ("U.S.") never end a sentence.
			if len([]rune(w)) == 1 && unicode.IsLetter([]rune(w)[0]) {
				return false
			}
			if strings.Contains(w, ".") {
				return false
			}
		}
	}

	j := punctEnd + 1
	for j < len(runes) && isClosing(runes[j]) {
		j++
	}
	if j >= len(runes) {
		return true
	}

	// Anything glued directly to the punctuation (a digit in "3.14",
	// a lowercase letter after an ellipsis) means the clause continues.
	if !unicode.IsSpace(runes[j]) {
		return false
	}
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	if j >= len(runes) {
		return true
	}

	next := runes[j]
	return unicode.IsUpper(next) || isQuote(next) || isOpening(next)
}

// precedingToken returns the whitespace-delimited token ending just
// before position pos, without the terminal punctuation itself.
func precedingToken(runes []rune, pos int) string {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	if start+1 >= pos {
		return ""
	}
	return string(runes[start+1 : pos])
}

func abbreviationSet(abbrevs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(abbrevs))
	for _, a := range abbrevs {
		set[strings.TrimSuffix(strings.ToLower(a), ".")] = struct{}{}
	}
	return set
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘', '«':
		return true
	}
	return false
}

func isOpening(r rune) bool {
	switch r {
	case '(', '[', '{':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', '»', ')', ']', '}':
		return true
	}
	return false
}
