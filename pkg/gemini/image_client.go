package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

// Synthesize renders one marketing image with a one-shot call against the
// image model. The first inline image of the response wins.
func (c *Client) Synthesize(ctx context.Context, prompt string) (domain.ImagePayload, error) {
	api, err := c.ensureAPI(ctx)
	if err != nil {
		return domain.ImagePayload{}, err
	}

	slog.InfoContext(ctx, "Generating marketing image", "model", c.imageModel, "promptLength", len(prompt))

	// The image models reject responseMimeType and responseSchema, so the
	// request carries no generation config beyond the prompt.
	resp, err := api.GenerativeModel(c.imageModel).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("generating image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return domain.ImagePayload{MIMEType: blob.MIMEType, Data: blob.Data}, nil
			}
		}
	}

	return domain.ImagePayload{}, fmt.Errorf("no image in response")
}
