package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// NetworkError reports that the catalog metadata source could not be used
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to load language catalog from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPSource fetches a JSON object of code -> display name from a metadata endpoint
type HTTPSource struct {
	URL        string
	HTTPClient *http.Client
}

// NewHTTPSource creates a source for url using the default HTTP client
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:        url,
		HTTPClient: &http.Client{},
	}
}

// Languages performs the GET and decodes the table
func (s *HTTPSource) Languages(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &NetworkError{URL: s.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &NetworkError{URL: s.URL, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var langs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&langs); err != nil {
		return nil, &NetworkError{URL: s.URL, Err: fmt.Errorf("failed to decode catalog: %w", err)}
	}

	return langs, nil
}
