package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiqai/ttsdesk/internal/audio"
	"github.com/lexiqai/ttsdesk/internal/catalog"
	"github.com/lexiqai/ttsdesk/internal/tts"
)

type synthCall struct {
	text string
	lang string
	slow bool
}

type mockSynthesizer struct {
	mu    sync.Mutex
	calls []synthCall
	audio []byte
	err   error
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, synthCall{text: text, lang: lang, slow: slow})
	if m.err != nil {
		return nil, m.err
	}
	return m.audio, nil
}

func (m *mockSynthesizer) Format() string { return "mp3" }

type failingStore struct{ err error }

func (s failingStore) Save(data []byte) (string, error) { return "", s.err }

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]string{"en": "English", "fr": "French"})
}

func newTestWorker(t *testing.T, synth *mockSynthesizer) (*Worker, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "output")
	return NewWorker(synth, audio.NewStore(dir, synth.Format()), testCatalog()), dir
}

func TestConvert_BlankTextSkipsSynthesis(t *testing.T) {
	for _, text := range []string{"", " ", "\n\t  \n", "  "} {
		synth := &mockSynthesizer{audio: []byte("x")}
		w, _ := newTestWorker(t, synth)

		res := w.Convert(context.Background(), Request{Text: text, LanguageCode: "en"})

		assert.False(t, res.OK(), "text %q", text)
		var vErr *ValidationError
		require.ErrorAs(t, res.Err, &vErr)
		assert.Equal(t, ErrNoText, res.Message)
		assert.Empty(t, synth.calls, "synthesizer must not be called for %q", text)
	}
}

func TestConvert_UnknownLanguageSkipsSynthesis(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("x")}
	w, _ := newTestWorker(t, synth)

	res := w.Convert(context.Background(), Request{Text: "Hello", LanguageCode: "xx"})

	var vErr *ValidationError
	require.ErrorAs(t, res.Err, &vErr)
	assert.Equal(t, "Language not supported: xx", res.Message)
	assert.Empty(t, synth.calls)
}

func TestConvert_Success(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("ID3-hello")}
	w, dir := newTestWorker(t, synth)

	res := w.Convert(context.Background(), Request{Text: "  Hello world \n", LanguageCode: "en"})
	require.True(t, res.OK(), "unexpected failure: %s", res.Message)

	pattern := regexp.MustCompile(`^speech_\d{8}-\d{6}_[0-9a-f]{8}\.mp3$`)
	assert.Equal(t, dir, filepath.Dir(res.FilePath))
	assert.Regexp(t, pattern, filepath.Base(res.FilePath))

	info, err := os.Stat(res.FilePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.Len(t, synth.calls, 1)
	assert.Equal(t, synthCall{text: "Hello world", lang: "en", slow: false}, synth.calls[0])
}

func TestConvert_DefaultOutputLayout(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	defer os.Chdir(wd)

	synth := &mockSynthesizer{audio: []byte("ID3")}
	w := NewWorker(synth, audio.NewStore("output", synth.Format()), testCatalog())

	res := w.Convert(context.Background(), Request{Text: "Hello world", LanguageCode: "en", Slow: false})
	require.True(t, res.OK())
	assert.Regexp(t, `^output/speech_\d{8}-\d{6}_[0-9a-f]{8}\.mp3$`, filepath.ToSlash(res.FilePath))
}

func TestConvert_SlowPassedThrough(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("a")}
	w, _ := newTestWorker(t, synth)

	w.Convert(context.Background(), Request{Text: "Bonjour", LanguageCode: "fr", Slow: true})

	require.Len(t, synth.calls, 1)
	assert.True(t, synth.calls[0].slow)
	assert.Equal(t, "fr", synth.calls[0].lang)
}

func TestConvert_SuccessivePathsDiffer(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("a")}
	w, _ := newTestWorker(t, synth)

	first := w.Convert(context.Background(), Request{Text: "one", LanguageCode: "en"})
	second := w.Convert(context.Background(), Request{Text: "two", LanguageCode: "en"})

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.NotEqual(t, first.FilePath, second.FilePath)
}

func TestConvert_SynthesisErrorVerbatim(t *testing.T) {
	svcErr := &tts.Error{StatusCode: 200, Msg: "No audio stream in response. Unsupported language 'en'?"}
	synth := &mockSynthesizer{err: svcErr}
	w, dir := newTestWorker(t, synth)

	res := w.Convert(context.Background(), Request{Text: "Hello", LanguageCode: "en"})

	assert.False(t, res.OK())
	assert.Equal(t, svcErr.Msg, res.Message)

	var extErr *ExternalServiceError
	require.ErrorAs(t, res.Err, &extErr)
	assert.Equal(t, "synthesize", extErr.Op)
	assert.True(t, errors.Is(res.Err, svcErr))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "no output directory should be created on failure")
}

func TestConvert_SaveError(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("a")}
	w := NewWorker(synth, failingStore{err: errors.New("disk full")}, testCatalog())

	res := w.Convert(context.Background(), Request{Text: "Hello", LanguageCode: "en"})

	var extErr *ExternalServiceError
	require.ErrorAs(t, res.Err, &extErr)
	assert.Equal(t, "save", extErr.Op)
	assert.Equal(t, "disk full", res.Message)
}

func TestConvert_NilCatalogAcceptsAnyLanguage(t *testing.T) {
	synth := &mockSynthesizer{audio: []byte("a")}
	w := NewWorker(synth, audio.NewStore(t.TempDir(), "mp3"), nil)

	res := w.Convert(context.Background(), Request{Text: "Hallo", LanguageCode: "de"})
	assert.True(t, res.OK())
}
