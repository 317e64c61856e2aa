// Package ollama provides a Summarizer backed by a local Ollama server.
// It is the default simulation backend: no API key, no cloud dependency,
// and a missing server degrades the pipeline rather than failing it.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/geolens"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is the model used when none is configured.
const DefaultModel = "llama3.2"

// defaultTimeout bounds a single summarization call. Local models can be
// slow on first load, so this is generous.
const defaultTimeout = 60 * time.Second

// Ensure Summarizer implements geolens.Summarizer at compile time.
var _ geolens.Summarizer = (*Summarizer)(nil)

// Summarizer implements geolens.Summarizer against the Ollama HTTP API.
type Summarizer struct {
	baseURL string
	model   string
	client  *http.Client
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithBaseURL sets the Ollama server address.
// Defaults to DefaultBaseURL if not specified.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithModel sets the model to summarize with.
// Defaults to DefaultModel if not specified.
func WithModel(m string) Option {
	return func(s *Summarizer) {
		s.model = m
	}
}

// WithTimeout sets the timeout for a summarization call.
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		s.client.Timeout = d
	}
}

// NewSummarizer creates a new Ollama-backed Summarizer.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generateRequest is the JSON body sent to /api/generate.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse is the non-streaming JSON response from /api/generate.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Summarize produces a short summary of the given page text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", geolens.Errorf(geolens.EINVALID, "text required")
	}

	body, err := json.Marshal(generateRequest{
		Model:   s.model,
		Prompt:  BuildPrompt(text),
		Stream:  false,
		Options: generateOptions{Temperature: 0.2},
	})
	if err != nil {
		return "", err
	}

	url := s.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", geolens.Errorf(geolens.EUNAVAILABLE, "ollama server unreachable at %s: %v", s.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", geolens.Errorf(geolens.EUNAVAILABLE, "ollama: HTTP %d: %s", resp.StatusCode, string(excerpt))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", geolens.Errorf(geolens.EINTERNAL, "decode ollama response: %v", err)
	}
	if strings.TrimSpace(result.Response) == "" {
		return "", geolens.Errorf(geolens.EINTERNAL, "ollama returned empty response")
	}

	return strings.TrimSpace(result.Response), nil
}

// BuildPrompt builds the summarization prompt sent to the model.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following web page in 3-5 sentences of plain prose. Use only facts the page states.\n\n")
	sb.WriteString("<page>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page>")
	return sb.String()
}
