package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/vokinneberg/handwritten-math-solver/internal/imaging"
)

// Answer sends the prompt, and the image when present, to the chat model
func (c *Client) Answer(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
	return c.complete(ctx, prompt, img)
}

// Caption describes the image in one sentence
func (c *Client) Caption(ctx context.Context, img *imaging.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to caption")
	}
	return c.complete(ctx, CaptionPrompt, img)
}

func (c *Client) complete(ctx context.Context, prompt string, img *imaging.Image) (string, error) {
	userMsg := openai.UserMessage(prompt)
	if img != nil {
		dataURL, err := pngDataURL(img)
		if err != nil {
			return "", err
		}
		userMsg = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		})
	}

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{userMsg},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := strings.TrimSpace(res.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from %s", c.model)
	}
	return text, nil
}

// pngDataURL encodes the image as a PNG data URL for image_url content parts
func pngDataURL(img *imaging.Image) (string, error) {
	data, err := img.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
