//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/geolens/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSummarizer_Integration_ReturnsSummary(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	s := gemini.NewSummarizer(client, gemini.DefaultModel)

	summary, err := s.Summarize(ctx, "Acme Corp is a manufacturer of industrial fasteners founded in 1982. The company employs 1,200 people across three plants and reported $340 million in revenue last year.")

	require.NoError(t, err)
	assert.NotEmpty(t, summary)
	assert.Contains(t, summary, "Acme")
}
