package audio

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeWAVDurationRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		seconds    float64
		sampleRate int
		channels   int
		bits       int
	}{
		{"one second mono 24k", 1.0, 24000, 1, 16},
		{"two and a half seconds", 2.5, 24000, 1, 16},
		{"stereo 44.1k", 0.5, 44100, 2, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bytesPerSecond := tt.sampleRate * tt.channels * tt.bits / 8
			pcm := make([]byte, int(tt.seconds*float64(bytesPerSecond)))

			wav := EncodeWAV(pcm, tt.sampleRate, tt.channels, tt.bits)

			got, err := Duration(wav)
			if err != nil {
				t.Fatalf("Duration failed: %v", err)
			}

			want := time.Duration(tt.seconds * float64(time.Second))
			if diff := got - want; diff < -time.Millisecond || diff > time.Millisecond {
				t.Errorf("duration %v, want %v", got, want)
			}
		})
	}
}

func TestDurationClampsTinyWAV(t *testing.T) {
	wav := EncodeWAV(make([]byte, 48), 24000, 1, 16)

	got, err := Duration(wav)
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if got != minWAVDuration {
		t.Errorf("duration %v, want clamp to %v", got, minWAVDuration)
	}
}

func TestDurationMP3Estimate(t *testing.T) {
	// One "second" of fake frames behind a tagless sync header.
	data := make([]byte, mp3FrameSize*38)
	data[0] = 0xff
	data[1] = 0xfb

	got, err := Duration(data)
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if got < 900*time.Millisecond || got > 1100*time.Millisecond {
		t.Errorf("duration %v, want about 1s", got)
	}
}

func TestDurationMP3SkipsID3Tag(t *testing.T) {
	tagSize := 200
	data := make([]byte, 10+tagSize+mp3FrameSize*38)
	copy(data, "ID3")
	data[6] = byte(tagSize >> 21 & 0x7f)
	data[7] = byte(tagSize >> 14 & 0x7f)
	data[8] = byte(tagSize >> 7 & 0x7f)
	data[9] = byte(tagSize & 0x7f)

	got, err := Duration(data)
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if got < 900*time.Millisecond || got > 1100*time.Millisecond {
		t.Errorf("duration %v, want about 1s", got)
	}
}

func TestDurationUnknownFormat(t *testing.T) {
	if _, err := Duration([]byte("definitely not audio")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := Duration(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestEstimateFromText(t *testing.T) {
	// 150 characters at ~15 chars/second is about 10 seconds.
	text := strings.Repeat("abcde ", 25)
	got := EstimateFromText(text)
	if got < 9*time.Second || got > 11*time.Second {
		t.Errorf("estimate %v, want about 10s", got)
	}

	// Short text floors at one second.
	if got := EstimateFromText("Hi."); got != time.Second {
		t.Errorf("estimate %v, want 1s floor", got)
	}
}
