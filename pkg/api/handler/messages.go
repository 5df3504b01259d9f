package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/darta-hq/darta-assistant/pkg/api/response"
	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

type ChatController interface {
	SetText(s string)
	StageImage(name, mimeType string, data []byte) error
	StageAudio(mimeType string, data []byte)
	StageDocument(name, mimeType string, data []byte) error
	ClearStaged()
	StartRecording(ctx context.Context) error
	StopRecording() error
	IsRecording() bool
	Send(ctx context.Context) error
	Transcript() []domain.TranscriptEntry
	IsSending() bool
}

type sendRequest struct {
	Text       string             `json:"text"`
	Attachment *attachmentPayload `json:"attachment,omitempty"`
}

type attachmentPayload struct {
	Kind     domain.AttachmentKind `json:"kind"`
	Name     string                `json:"name,omitempty"`
	MIMEType string                `json:"mimeType"`
	// Data is the base64-encoded payload for image/audio/PDF, or the raw
	// UTF-8 content for text documents.
	Data string `json:"data"`
}

type messages struct {
	controller ChatController
	writer     response.JSONResponseWriter
}

func NewMessages(controller ChatController) *messages {
	return &messages{controller: controller}
}

// Send stages the request's attachment (if any), sets the text, and runs one
// conversation turn. The response is the full transcript so the client can
// reconcile by entry id.
func (m *messages) Send(w http.ResponseWriter, r *http.Request) {
	ctx := logger.ContextWithRequestID(r.Context(), uuid.NewString()[:8])

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Attachment != nil {
		if err := m.stage(req.Attachment); err != nil {
			m.writer.WriteDomainError(w, err)
			return
		}
	}
	m.controller.SetText(req.Text)

	if err := m.controller.Send(ctx); err != nil {
		slog.ErrorContext(ctx, "sending message", logger.Err(err))
		m.writer.WriteDomainError(w, err)
		return
	}

	m.writer.WriteSuccessResponse(w, map[string]any{
		"transcript": m.controller.Transcript(),
	})
}

func (m *messages) stage(a *attachmentPayload) error {
	switch a.Kind {
	case domain.AttachmentKindImage:
		data, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return err
		}
		return m.controller.StageImage(a.Name, a.MIMEType, data)
	case domain.AttachmentKindAudio:
		data, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return err
		}
		m.controller.StageAudio(a.MIMEType, data)
		return nil
	case domain.AttachmentKindDocument:
		// PDFs arrive base64-encoded; text documents as raw content.
		if a.MIMEType == "application/pdf" {
			data, err := base64.StdEncoding.DecodeString(a.Data)
			if err != nil {
				return err
			}
			return m.controller.StageDocument(a.Name, a.MIMEType, data)
		}
		return m.controller.StageDocument(a.Name, a.MIMEType, []byte(a.Data))
	default:
		return domain.ErrUnsupportedFormat
	}
}
