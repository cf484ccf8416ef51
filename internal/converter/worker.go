package converter

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lexiqai/ttsdesk/internal/catalog"
	"github.com/lexiqai/ttsdesk/internal/observability"
	"github.com/lexiqai/ttsdesk/internal/tts"
)

// AudioStore persists synthesized audio and returns where it was written
type AudioStore interface {
	Save(data []byte) (string, error)
}

// Worker runs conversions: validate, synthesize, save
type Worker struct {
	synth   tts.Synthesizer
	store   AudioStore
	catalog *catalog.Catalog
}

// NewWorker creates a worker. A nil catalog disables the language check.
func NewWorker(synth tts.Synthesizer, store AudioStore, cat *catalog.Catalog) *Worker {
	return &Worker{
		synth:   synth,
		store:   store,
		catalog: cat,
	}
}

// Convert performs one conversion. It never panics on service errors and
// never returns an error; failures are carried in the Result.
func (w *Worker) Convert(ctx context.Context, req Request) Result {
	timer := observability.StartConversion()
	logger := observability.WithCorrelationID("")

	text := strings.TrimSpace(req.Text)
	if text == "" {
		timer.Finish(observability.StatusInvalid)
		logger.Debug().Msg("Rejected conversion with no text")
		return Failure(&ValidationError{Reason: ErrNoText})
	}

	if w.catalog != nil && !w.catalog.Contains(req.LanguageCode) {
		timer.Finish(observability.StatusInvalid)
		logger.Warn().Str("language", req.LanguageCode).Msg("Rejected conversion with unknown language")
		return Failure(unsupportedLanguage(req.LanguageCode))
	}

	logger.Info().
		Str("language", req.LanguageCode).
		Bool("slow", req.Slow).
		Int("chars", utf8.RuneCountInString(text)).
		Msg("Conversion started")

	data, err := w.synth.Synthesize(ctx, text, req.LanguageCode, req.Slow)
	if err != nil {
		elapsed := timer.Finish(observability.StatusError)
		errType := "service"
		if tts.IsConnectError(err) {
			errType = "network"
		}
		observability.RecordError(errType, "tts")
		logger.Error().Err(err).Dur("duration", elapsed).Msg("Synthesis failed")
		return Failure(&ExternalServiceError{Op: "synthesize", Err: err})
	}

	path, err := w.store.Save(data)
	if err != nil {
		elapsed := timer.Finish(observability.StatusError)
		observability.RecordError("io", "audio")
		logger.Error().Err(err).Dur("duration", elapsed).Msg("Saving audio failed")
		return Failure(&ExternalServiceError{Op: "save", Err: err})
	}

	elapsed := timer.Finish(observability.StatusSuccess)
	observability.RecordAudioBytes(len(data))
	logger.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Dur("duration", elapsed).
		Msg("Conversion completed")

	return Success(path)
}
