package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/darta-hq/darta-assistant/pkg/api/response"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

type recording struct {
	controller ChatController
	writer     response.JSONResponseWriter
}

func NewRecording(controller ChatController) *recording {
	return &recording{controller: controller}
}

// Start acquires the capture device and enters recording. Acquisition
// failures surface immediately; there is no retry.
func (rec *recording) Start(w http.ResponseWriter, r *http.Request) {
	ctx := logger.ContextWithRequestID(r.Context(), uuid.NewString()[:8])

	if err := rec.controller.StartRecording(ctx); err != nil {
		slog.ErrorContext(ctx, "starting recording", logger.Err(err))
		rec.writer.WriteDomainError(w, err)
		return
	}

	rec.writer.WriteSuccessResponse(w, map[string]any{
		"recording": true,
	})
}

// Stop flushes the recording into the staged attachment slot. A follow-up
// message send picks it up.
func (rec *recording) Stop(w http.ResponseWriter, r *http.Request) {
	ctx := logger.ContextWithRequestID(r.Context(), uuid.NewString()[:8])

	if err := rec.controller.StopRecording(); err != nil {
		slog.ErrorContext(ctx, "stopping recording", logger.Err(err))
		rec.writer.WriteDomainError(w, err)
		return
	}

	rec.writer.WriteSuccessResponse(w, map[string]any{
		"recording": false,
		"staged":    "audio",
	})
}
