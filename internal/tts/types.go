package tts

import "context"

// Synthesizer converts text to encoded audio using a remote service
type Synthesizer interface {
	// Synthesize returns the complete audio for text spoken in lang
	Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error)

	// Format returns the file extension of the audio encoding, e.g. "mp3"
	Format() string
}

// Error is a failure reported by, or while reaching, the synthesis service.
// Its message is meant to be shown to the user as-is.
type Error struct {
	StatusCode int // HTTP status, 0 if no response was received
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
