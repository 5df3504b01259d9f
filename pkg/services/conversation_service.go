package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

const imageToolName = "generate_marketing_image"

// ModelSession is one live conversation turn holder on the external model.
type ModelSession interface {
	SendParts(ctx context.Context, parts []domain.Part) (domain.ModelResponse, error)
}

// ModelClient opens sessions against the external model. A missing credential
// surfaces as domain.ErrMissingCredentials.
type ModelClient interface {
	StartSession(ctx context.Context) (ModelSession, error)
}

// ImageSynthesizer is the capability gateway behind the single declared tool.
// Failures are best-effort: the conversation turn still completes without an
// image.
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, prompt string) (domain.ImagePayload, error)
}

// conversationService owns the single model session: lazy creation on first
// send, part assembly, and the tool-call round trip. Every failure is folded
// into a user-facing reply; nothing here returns an error to the caller.
type conversationService struct {
	client  ModelClient
	gateway ImageSynthesizer

	mu      sync.Mutex
	session ModelSession
}

func NewConversationService(client ModelClient, gateway ImageSynthesizer) *conversationService {
	return &conversationService{
		client:  client,
		gateway: gateway,
	}
}

// Send runs one conversation turn. The zero Reply means the message was empty
// and nothing was submitted.
func (s *conversationService) Send(ctx context.Context, msg domain.ComposedMessage) domain.Reply {
	parts := buildParts(msg)
	if len(parts) == 0 {
		// Pre-send guard, not user-visible: no parts, no network call.
		slog.DebugContext(ctx, "Dropping empty message", logger.Err(domain.ErrEmptyMessage))
		return domain.Reply{}
	}

	session, err := s.ensureSession(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredentials) {
			slog.WarnContext(ctx, "No model credential configured, replying in degraded mode")
			return domain.Reply{Text: domain.DegradedModeReply}
		}
		slog.ErrorContext(ctx, "Creating model session", logger.Err(err))
		return domain.Reply{Text: domain.ApologeticReply}
	}

	reply, err := s.runTurn(ctx, session, parts)
	if err != nil {
		// The session is kept as-is: the next send reuses it rather than
		// reconnecting.
		slog.ErrorContext(ctx, "Conversation turn failed", logger.Err(err))
		return domain.Reply{Text: domain.ApologeticReply}
	}
	return reply
}

// ensureSession creates the model session on first use. Once Ready the
// service never transitions back, even after turn failures.
func (s *conversationService) ensureSession(ctx context.Context) (ModelSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return s.session, nil
	}

	session, err := s.client.StartSession(ctx)
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// turnState sequences one send: the follow-up ToolResult submission can never
// be skipped once a capability invocation was observed.
type turnState int

const (
	turnAwaitingModel turnState = iota
	turnAwaitingCapability
	turnAwaitingFinalReply
	turnDone
)

func (s *conversationService) runTurn(ctx context.Context, session ModelSession, parts []domain.Part) (domain.Reply, error) {
	var (
		state      = turnAwaitingModel
		reply      domain.Reply
		invocation domain.ToolInvocation
		result     domain.ToolResult
	)

	for state != turnDone {
		switch state {
		case turnAwaitingModel:
			resp, err := session.SendParts(ctx, parts)
			if err != nil {
				return domain.Reply{}, fmt.Errorf("submitting parts: %w", err)
			}

			inv, ok := imageInvocation(resp)
			if !ok {
				reply.Text = resp.Text
				state = turnDone
				continue
			}
			invocation = inv
			state = turnAwaitingCapability

		case turnAwaitingCapability:
			image, err := s.gateway.Synthesize(ctx, invocation.PromptArg())
			if err != nil || len(image.Data) == 0 {
				if err != nil {
					slog.WarnContext(ctx, "Image synthesis failed", logger.Err(err))
				}
				result = domain.ToolResult{
					InvocationID: invocation.ID,
					Name:         invocation.Name,
					Outcome:      "Failed to generate image.",
				}
			} else {
				reply.Images = append(reply.Images, image)
				result = domain.ToolResult{
					InvocationID: invocation.ID,
					Name:         invocation.Name,
					Outcome:      "Image generated successfully.",
					OK:           true,
				}
			}
			state = turnAwaitingFinalReply

		case turnAwaitingFinalReply:
			// The result reports the outcome only; image bytes reach the
			// caller through the reply, never the model.
			resp, err := session.SendParts(ctx, []domain.Part{domain.ToolResultPart(result)})
			if err != nil {
				return domain.Reply{}, fmt.Errorf("submitting tool result: %w", err)
			}
			reply.Text = resp.Text
			state = turnDone
		}
	}

	return reply, nil
}

func imageInvocation(resp domain.ModelResponse) (domain.ToolInvocation, bool) {
	for _, inv := range resp.Invocations {
		if inv.Name == imageToolName {
			return inv, true
		}
	}
	return domain.ToolInvocation{}, false
}

// buildParts assembles the ordered part list for one outgoing message: text
// first, then at most one attachment part. Text-payload documents are folded
// into the prompt instead of travelling as a binary part.
func buildParts(msg domain.ComposedMessage) []domain.Part {
	var parts []domain.Part

	if text := strings.TrimSpace(msg.Text); text != "" {
		parts = append(parts, domain.TextPart(text))
	}

	a := msg.Attachment
	if a == nil {
		return parts
	}

	switch {
	case a.Kind == domain.AttachmentKindDocument && a.IsText():
		name := a.DisplayName
		if name == "" {
			name = "Document"
		}
		parts = append(parts, domain.TextPart(
			fmt.Sprintf("\n[Content of %s]:\n%s\n[End of %s]\n", name, a.Text, name)))
	case len(a.Data) > 0:
		parts = append(parts, domain.BlobPart(a.MIMEType, a.Data))
	}

	return parts
}
