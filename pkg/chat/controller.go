package chat

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/darta-hq/darta-assistant/pkg/attachment"
	"github.com/darta-hq/darta-assistant/pkg/composer"
	"github.com/darta-hq/darta-assistant/pkg/domain"
)

type Conversation interface {
	Send(ctx context.Context, msg domain.ComposedMessage) domain.Reply
}

type TranscriptRepository interface {
	Append(entry domain.TranscriptEntry) domain.TranscriptEntry
	All() []domain.TranscriptEntry
}

// Controller is the surface the view layer talks to: staging, composing,
// sending, and reading the transcript. Send never surfaces model failures as
// errors; they arrive as assistant transcript entries. Staging errors are
// returned synchronously so the UI can show a blocking notice.
type Controller struct {
	conversation Conversation
	transcript   TranscriptRepository
	composer     *composer.Composer
	recorder     *attachment.Recorder

	sending atomic.Bool
}

func NewController(conversation Conversation, transcript TranscriptRepository, recorder *attachment.Recorder) *Controller {
	transcript.Append(domain.TranscriptEntry{
		Role: domain.RoleAssistant,
		Text: domain.WelcomeMessage,
	})

	return &Controller{
		conversation: conversation,
		transcript:   transcript,
		composer:     composer.New(),
		recorder:     recorder,
	}
}

func (c *Controller) StageImage(name, mimeType string, data []byte) error {
	a, err := attachment.Image(name, mimeType, data)
	if err != nil {
		return err
	}
	c.composer.StageAttachment(a)
	return nil
}

func (c *Controller) StageDocument(name, mimeType string, data []byte) error {
	a, err := attachment.Document(name, mimeType, data)
	if err != nil {
		return err
	}
	c.composer.StageAttachment(a)
	return nil
}

// StageAudio stages an already captured audio payload, as delivered by a
// messaging channel. Device-driven capture goes through StartRecording and
// StopRecording instead.
func (c *Controller) StageAudio(mimeType string, data []byte) {
	c.composer.StageAttachment(&domain.Attachment{
		Kind:       domain.AttachmentKindAudio,
		MIMEType:   mimeType,
		Data:       data,
		PreviewURL: attachment.DataURL(mimeType, data),
	})
}

// StartRecording acquires the capture device. Starting a recording discards
// any staged attachment and pending text, matching the one-slot invariant.
func (c *Controller) StartRecording(ctx context.Context) error {
	if err := c.recorder.Start(ctx); err != nil {
		return err
	}
	c.composer.ClearStaged()
	c.composer.SetText("")
	return nil
}

// StopRecording flushes the recording into the attachment slot.
func (c *Controller) StopRecording() error {
	a, err := c.recorder.Stop()
	if err != nil {
		return err
	}
	c.composer.StageAttachment(a)
	return nil
}

func (c *Controller) IsRecording() bool {
	return c.recorder.IsRecording()
}

func (c *Controller) ClearStaged() {
	c.composer.ClearStaged()
}

func (c *Controller) SetText(s string) {
	c.composer.SetText(s)
}

func (c *Controller) CanSend() bool {
	return c.composer.CanSend() && !c.sending.Load()
}

func (c *Controller) IsSending() bool {
	return c.sending.Load()
}

func (c *Controller) Transcript() []domain.TranscriptEntry {
	return c.transcript.All()
}

// Send builds the outgoing message, appends the user entry, runs the
// conversation turn, and appends the assistant entry. It returns only the
// busy-precondition violation; everything else resolves into the transcript.
func (c *Controller) Send(ctx context.Context) error {
	_, err := c.SendForReply(ctx)
	return err
}

// SendForReply is Send for messaging channels that need the reply payloads
// back to deliver them on their own transport.
func (c *Controller) SendForReply(ctx context.Context) (domain.Reply, error) {
	if !c.sending.CompareAndSwap(false, true) {
		return domain.Reply{}, domain.ErrSendInFlight
	}
	defer c.sending.Store(false)

	msg := c.composer.BuildOutgoing()
	if msg.IsEmpty() {
		return domain.Reply{}, nil
	}

	c.transcript.Append(domain.TranscriptEntry{
		Role:        domain.RoleUser,
		Text:        msg.Text,
		Attachments: renderableFrom(msg.Attachment),
	})

	slog.InfoContext(ctx, "Sending message", "textLength", len(msg.Text), "hasAttachment", msg.Attachment != nil)

	reply := c.conversation.Send(ctx, msg)

	c.transcript.Append(domain.TranscriptEntry{
		Role: domain.RoleAssistant,
		Text: reply.Text,
		Attachments: lo.Map(reply.Images, func(img domain.ImagePayload, _ int) domain.RenderableAttachment {
			return domain.RenderableAttachment{
				Kind: domain.AttachmentKindImage,
				URL:  attachment.DataURL(img.MIMEType, img.Data),
			}
		}),
	})

	return reply, nil
}

func renderableFrom(a *domain.Attachment) []domain.RenderableAttachment {
	if a == nil {
		return nil
	}
	return []domain.RenderableAttachment{{
		Kind: a.Kind,
		Name: a.DisplayName,
		URL:  a.PreviewURL,
	}}
}
