package subtitle

import "errors"

// Validation errors for the synchronization pipeline. All of them abort
// the surrounding Compose call wholesale; no partial SRT is ever emitted.
var (
	// ErrInvalidInput marks estimator input that cannot be timed:
	// a non-positive total duration or an empty sentence list.
	ErrInvalidInput = errors.New("invalid estimator input")

	// ErrInvalidSegment marks a podcast turn with a non-positive duration.
	ErrInvalidSegment = errors.New("invalid speech segment")

	// ErrFormat marks a malformed cue handed to the SRT renderer.
	ErrFormat = errors.New("malformed cue")
)
