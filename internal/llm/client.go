package llm

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CaptionPrompt asks a vision model for a one-sentence description
const CaptionPrompt = "Describe this image in one short sentence."

// Client wraps OpenAI client and provides answer and caption methods
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new LLM client with API key
func NewClient(apiKey, model string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &Client{
		client: &client,
		model:  model,
	}
}

// Name returns the provider name
func (c *Client) Name() string { return "openai" }
