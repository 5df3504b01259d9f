package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

// ImageClient synthesizes marketing images with DALL-E, as an alternative to
// the Gemini image model.
type ImageClient struct {
	api *openai.Client
}

func NewImageClient(token string) (*ImageClient, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	return &ImageClient{api: openai.NewClient(token)}, nil
}

func (c *ImageClient) Synthesize(ctx context.Context, prompt string) (domain.ImagePayload, error) {
	slog.InfoContext(ctx, "Generating marketing image", "model", openai.CreateImageModelDallE3, "promptLength", len(prompt))

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("generating image: %w", err)
	}

	if len(resp.Data) == 0 {
		return domain.ImagePayload{}, fmt.Errorf("no image in response")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("decoding image payload: %w", err)
	}

	return domain.ImagePayload{MIMEType: "image/png", Data: data}, nil
}
