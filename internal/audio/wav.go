package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	minWAVDuration = 100 * time.Millisecond
	minMP3Duration = 500 * time.Millisecond

	// Rough MP3 geometry for a 128 kbps stream: ~417 bytes per frame,
	// ~38 frames per second. Good enough for subtitle timing when no
	// real decoder is in play.
	mp3FrameSize    = 417
	mp3FramesPerSec = 38.0
	charsPerSecond  = 15.0 // rough spoken pace for the text fallback
	minTextEstimate = time.Second
	wavHeaderSize   = 44
)

// Duration reads the spoken length out of in-memory audio. WAV durations
// come from the RIFF header fields; MP3 durations are a frame-count
// estimate. Unknown formats return an error so the caller can fall back
// to a text-based estimate.
func Duration(data []byte) (time.Duration, error) {
	if len(data) >= wavHeaderSize && bytes.HasPrefix(data, []byte("RIFF")) {
		return wavDuration(data)
	}
	if isMP3(data) {
		return mp3Duration(data), nil
	}
	return 0, fmt.Errorf("unrecognized audio format")
}

func wavDuration(data []byte) (time.Duration, error) {
	channels := binary.LittleEndian.Uint16(data[22:24])
	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	bitsPerSample := binary.LittleEndian.Uint16(data[34:36])
	dataSize := binary.LittleEndian.Uint32(data[40:44])

	bytesPerSecond := int64(sampleRate) * int64(channels) * int64(bitsPerSample) / 8
	if bytesPerSecond <= 0 {
		return 0, fmt.Errorf("invalid WAV header: %d Hz, %d channels, %d bits",
			sampleRate, channels, bitsPerSample)
	}

	d := time.Duration(float64(dataSize) / float64(bytesPerSecond) * float64(time.Second))
	if d < minWAVDuration {
		d = minWAVDuration
	}
	return d, nil
}

func isMP3(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	if bytes.HasPrefix(data, []byte("ID3")) {
		return true
	}
	switch {
	case data[0] == 0xff && data[1] == 0xfb,
		data[0] == 0xff && data[1] == 0xf3,
		data[0] == 0xff && data[1] == 0xf2:
		return true
	}
	return false
}

func mp3Duration(data []byte) time.Duration {
	payload := data
	if bytes.HasPrefix(data, []byte("ID3")) && len(data) > 10 {
		// ID3v2 size is a syncsafe integer in bytes 6..9.
		size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 |
			int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
		if 10+size < len(data) {
			payload = data[10+size:]
		}
	}

	frames := len(payload) / mp3FrameSize
	d := time.Duration(float64(frames) / mp3FramesPerSec * float64(time.Second))
	if d < minMP3Duration {
		d = minMP3Duration
	}
	return d
}

// EstimateFromText guesses a spoken duration from character count when
// no audio is available to measure, with a one second floor.
func EstimateFromText(text string) time.Duration {
	d := time.Duration(float64(utf8.RuneCountInString(text)) / charsPerSecond * float64(time.Second))
	if d < minTextEstimate {
		d = minTextEstimate
	}
	return d
}

// EncodeWAV wraps raw PCM samples in a canonical 44-byte RIFF header.
// Engines that return bare PCM (Gemini emits 24 kHz mono 16-bit) go
// through here so the result is playable and Duration can measure it.
func EncodeWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := make([]byte, 0, wavHeaderSize+len(pcm))
	w := bytes.NewBuffer(buf)

	w.WriteString("RIFF")
	binary.Write(w, binary.LittleEndian, uint32(36+len(pcm)))
	w.WriteString("WAVE")

	w.WriteString("fmt ")
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(w, binary.LittleEndian, uint16(channels))
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, uint32(byteRate))
	binary.Write(w, binary.LittleEndian, uint16(blockAlign))
	binary.Write(w, binary.LittleEndian, uint16(bitsPerSample))

	w.WriteString("data")
	binary.Write(w, binary.LittleEndian, uint32(len(pcm)))
	w.Write(pcm)

	return w.Bytes()
}
