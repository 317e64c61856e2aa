package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/geolens"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements geolens.Summarizer at compile time.
var _ geolens.Summarizer = (*Summarizer)(nil)

// Summarizer implements geolens.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects
// DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize produces a short summary of the given page text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", geolens.Errorf(geolens.EINVALID, "text required")
	}

	prompt := BuildUserPrompt(text)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", geolens.Errorf(geolens.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return "", geolens.Errorf(geolens.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an AI assistant summarizing a web page. Write a concise summary in plain prose, based only on the page content provided. Do not add facts the page does not state.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the page content.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page>\n\n")
	sb.WriteString("Summarize the page above in 3-5 sentences.")
	return sb.String()
}
