package tts

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/lexiqai/ttsdesk/internal/observability"
)

const (
	rpcID           = "jQ1olc"
	batchExecPath   = "/_/TranslateWebserverUi/data/batchexecute"
	audioFormat     = "mp3"
	defaultTLD      = "com"
	requestReferer  = "http://translate.google.com/"
	requestAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	formContentType = "application/x-www-form-urlencoded;charset=utf-8"
)

// audioPattern extracts the base64 payload from a batchexecute response line
var audioPattern = regexp.MustCompile(`jQ1olc","\[\\"(.*)\\"]`)

// GoogleClient implements Synthesizer using the Google Translate web TTS endpoint
type GoogleClient struct {
	endpoint   string
	tld        string
	httpClient *http.Client
}

// NewGoogleClient creates a client for translate.google.<tld>.
// A non-empty baseURL replaces the whole endpoint.
func NewGoogleClient(tld, baseURL string) *GoogleClient {
	if tld == "" {
		tld = defaultTLD
	}
	endpoint := baseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://translate.google.%s%s", tld, batchExecPath)
	}
	return &GoogleClient{
		endpoint:   endpoint,
		tld:        tld,
		httpClient: &http.Client{},
	}
}

// Endpoint returns the URL requests are posted to
func (c *GoogleClient) Endpoint() string {
	return c.endpoint
}

// Format returns the native encoding of the service
func (c *GoogleClient) Format() string {
	return audioFormat
}

// Synthesize tokenizes text and concatenates the audio of every chunk
func (c *GoogleClient) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	chunks := Tokenize(text, MaxChunkChars)
	if len(chunks) == 0 {
		return nil, &Error{Msg: "No text to send to TTS API"}
	}

	logger := observability.GetLogger()
	logger.Debug().
		Str("language", lang).
		Bool("slow", slow).
		Int("chunks", len(chunks)).
		Msg("Synthesizing text")

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := c.synthesizeChunk(ctx, chunk, lang, slow)
		if err != nil {
			return nil, err
		}
		audio.Write(data)

		logger.Debug().
			Int("chunk", i).
			Int("bytes", len(data)).
			Msg("Received audio chunk")
	}

	return audio.Bytes(), nil
}

func (c *GoogleClient) synthesizeChunk(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	body, err := packageRPC(text, lang, slow)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("failed to encode request: %v", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Referer", requestReferer)
	req.Header.Set("User-Agent", requestAgent)
	req.Header.Set("Content-Type", formContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Msg: c.connectFailureMessage(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Msg:        c.statusMessage(resp, lang),
		}
	}

	var audio bytes.Buffer
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, rpcID) {
			continue
		}
		match := audioPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			return nil, &Error{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("failed to decode audio: %v", err), Err: err}
		}
		audio.Write(decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	if audio.Len() == 0 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Msg:        fmt.Sprintf("No audio stream in response. Unsupported language '%s'?", lang),
		}
	}

	return audio.Bytes(), nil
}

func (c *GoogleClient) connectFailureMessage() string {
	cause := "Unknown"
	if c.tld != defaultTLD {
		cause = fmt.Sprintf("Host 'https://translate.google.%s' is not reachable", c.tld)
	}
	return fmt.Sprintf("Failed to connect. Probable cause: %s", cause)
}

func (c *GoogleClient) statusMessage(resp *http.Response, lang string) string {
	var cause string
	switch {
	case resp.StatusCode == http.StatusForbidden:
		cause = "Bad token or upstream API changes"
	case resp.StatusCode == http.StatusNotFound && c.tld != defaultTLD:
		cause = fmt.Sprintf("Unsupported tld '%s'", c.tld)
	case resp.StatusCode == http.StatusTooManyRequests:
		cause = "Too many requests, wait before trying again"
	case resp.StatusCode >= 500:
		cause = "Upstream API error. Try again later."
	default:
		cause = "Unknown"
	}
	return fmt.Sprintf("%d (%s) from TTS API. Probable cause: %s",
		resp.StatusCode, http.StatusText(resp.StatusCode), cause)
}

// packageRPC builds the form body for one batchexecute call
func packageRPC(text, lang string, slow bool) (string, error) {
	var speed any
	if slow {
		speed = true
	}

	param, err := compactJSON([]any{text, lang, speed, "null"})
	if err != nil {
		return "", err
	}
	rpc, err := compactJSON([][][]any{{{rpcID, param, nil, "generic"}}})
	if err != nil {
		return "", err
	}

	return "f.req=" + url.QueryEscape(rpc) + "&", nil
}

// compactJSON marshals v without HTML escaping or a trailing newline
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// IsConnectError reports whether err means the service was never reached
func IsConnectError(err error) bool {
	var tErr *Error
	return errors.As(err, &tErr) && tErr.StatusCode == 0 && tErr.Err != nil
}
