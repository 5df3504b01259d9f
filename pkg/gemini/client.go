package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

const imageToolName = "generate_marketing_image"

// imageGenerationTool is the single capability declared on every chat
// session: marketing-image synthesis from a text prompt.
var imageGenerationTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{{
		Name:        imageToolName,
		Description: "Generates a marketing image, flyer, or WhatsApp status image based on a prompt.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"prompt": {
					Type:        genai.TypeString,
					Description: "A detailed description of the image to generate, including style, product details, and text to appear (if any).",
				},
			},
			Required: []string{"prompt"},
		},
	}},
}

type Client struct {
	apiKey     string
	textModel  string
	imageModel string

	mu  sync.Mutex
	api *genai.Client
}

// NewClient builds a lazily connecting Gemini client. An empty API key is
// accepted: connecting then fails with domain.ErrMissingCredentials, which the
// conversation layer turns into the degraded-mode reply.
func NewClient(apiKey, textModel, imageModel string) *Client {
	return &Client{
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
	}
}

func (c *Client) ensureAPI(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	if c.apiKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	api, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.api = api
	return api, nil
}

// StartSession opens one chat session carrying the system instruction and the
// image-generation tool declaration.
func (c *Client) StartSession(ctx context.Context) (*Session, error) {
	api, err := c.ensureAPI(ctx)
	if err != nil {
		return nil, err
	}

	model := api.GenerativeModel(c.textModel)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(domain.SystemInstruction)}}
	model.SetTemperature(0.7)
	model.Tools = []*genai.Tool{imageGenerationTool}

	slog.InfoContext(ctx, "Gemini chat session created", "model", c.textModel)

	return &Session{chat: model.StartChat()}, nil
}

// Session wraps one live Gemini chat session.
type Session struct {
	chat *genai.ChatSession
}

// SendParts submits one multi-part message on the session turn and reports
// the model's text together with any capability invocations.
func (s *Session) SendParts(ctx context.Context, parts []domain.Part) (domain.ModelResponse, error) {
	payload, err := toGenaiParts(parts)
	if err != nil {
		return domain.ModelResponse{}, err
	}

	resp, err := s.chat.SendMessage(ctx, payload...)
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("sending message: %w", err)
	}

	return fromResponse(resp), nil
}

func toGenaiParts(parts []domain.Part) ([]genai.Part, error) {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case domain.PartKindText:
			out = append(out, genai.Text(p.Text))
		case domain.PartKindBlob:
			out = append(out, genai.Blob{MIMEType: p.MIMEType, Data: p.Data})
		case domain.PartKindToolResult:
			out = append(out, genai.FunctionResponse{
				Name:     p.ToolResult.Name,
				Response: map[string]any{"result": p.ToolResult.Outcome},
			})
		default:
			return nil, fmt.Errorf("unknown part kind %q", p.Kind)
		}
	}
	return out, nil
}

func fromResponse(resp *genai.GenerateContentResponse) domain.ModelResponse {
	var out domain.ModelResponse
	if len(resp.Candidates) == 0 {
		return out
	}

	cand := resp.Candidates[0]
	for _, fc := range cand.FunctionCalls() {
		out.Invocations = append(out.Invocations, domain.ToolInvocation{
			Name: fc.Name,
			Args: fc.Args,
		})
	}

	if cand.Content == nil {
		return out
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out.Text = sb.String()
	return out
}
