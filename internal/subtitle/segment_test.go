package subtitle

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "Hello world. This is the first sentence. How are you doing today?",
			want: []string{
				"Hello world.",
				"This is the first sentence.",
				"How are you doing today?",
			},
		},
		{
			name: "no terminal punctuation",
			text: "  just one clause without an ending  ",
			want: []string{"just one clause without an ending"},
		},
		{
			name: "abbreviation does not split",
			text: "Dr. Smith arrived.",
			want: []string{"Dr. Smith arrived."},
		},
		{
			name: "multiple abbreviations",
			text: "Mr. Jones met Mrs. Lee. Prof. Chan left early.",
			want: []string{"Mr. Jones met Mrs. Lee.", "Prof. Chan left early."},
		},
		{
			name: "single letter initial",
			text: "J. Smith wrote the report. It was long.",
			want: []string{"J. Smith wrote the report.", "It was long."},
		},
		{
			name: "decimal number stays intact",
			text: "The price rose to 3.14 dollars. Everyone cheered.",
			want: []string{"The price rose to 3.14 dollars.", "Everyone cheered."},
		},
		{
			name: "mid-clause ellipsis",
			text: "Wait... maybe not. Fine.",
			want: []string{"Wait... maybe not.", "Fine."},
		},
		{
			name: "consecutive punctuation is one boundary",
			text: "Really?! Yes.",
			want: []string{"Really?!", "Yes."},
		},
		{
			name: "closing quote attaches to sentence",
			text: `He said "Stop!" Then he left.`,
			want: []string{`He said "Stop!"`, "Then he left."},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
		{
			name: "trailing text without punctuation",
			text: "First sentence. and then a trailing fragment",
			want: []string{"First sentence. and then a trailing fragment"},
		},
		{
			name: "lowercase after period does not split",
			text: "see the file named main.go for details",
			want: []string{"see the file named main.go for details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text, cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmentReconstructsText(t *testing.T) {
	cfg := DefaultConfig()

	texts := []string{
		"Hello world. This is the first sentence. How are you doing today?",
		"Dr. Smith arrived. He was late.",
		"One! Two? Three.",
		"No punctuation here at all",
	}

	for _, text := range texts {
		sentences := Segment(text, cfg)
		rebuilt := strings.Join(sentences, " ")
		if rebuilt != strings.TrimSpace(text) {
			t.Errorf("reconstruction mismatch:\n got %q\nwant %q", rebuilt, strings.TrimSpace(text))
		}
	}
}

func TestSegmentIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	text := "Mr. A said hi. Ms. B waved back! Done?"

	first := Segment(text, cfg)
	for i := 0; i < 10; i++ {
		if got := Segment(text, cfg); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}
