package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
)

// Gemini answers and captions through the Gemini API. The underlying client
// is created once and shared by all requests.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client with API key
func NewGemini(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  strings.TrimSpace(model),
	}, nil
}

// Name returns the provider name
func (g *Gemini) Name() string { return "gemini" }

// Close releases the underlying connection
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Answer sends the prompt, and the image when present, to the model
func (g *Gemini) Answer(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
	return g.generate(ctx, prompt, img)
}

// Caption describes the image in one sentence
func (g *Gemini) Caption(ctx context.Context, img *imaging.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to caption")
	}
	return g.generate(ctx, CaptionPrompt, img)
}

func (g *Gemini) generate(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
	parts := []genai.Part{genai.Text(prompt)}
	if img != nil {
		data, err := img.PNG()
		if err != nil {
			return "", err
		}
		parts = append(parts, genai.ImageData("png", data))
	}

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from %s", g.model)
	}
	return text, nil
}

// responseText joins the text parts of the first candidate that has content
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return strings.TrimSpace(b.String())
		}
	}
	return ""
}
