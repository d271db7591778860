package textgen

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/matzehuels/vamsha/pkg/errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenAI generates text with Google's Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeServiceUnavailable, "GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *GenAI) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "generate content with %s", g.model)
	}
	return resp.Text(), nil
}
