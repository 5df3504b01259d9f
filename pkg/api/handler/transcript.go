package handler

import (
	"net/http"

	"github.com/darta-hq/darta-assistant/pkg/api/response"
)

type transcript struct {
	controller ChatController
	writer     response.JSONResponseWriter
}

func NewTranscript(controller ChatController) *transcript {
	return &transcript{controller: controller}
}

func (t *transcript) Get(w http.ResponseWriter, r *http.Request) {
	t.writer.WriteSuccessResponse(w, map[string]any{
		"transcript": t.controller.Transcript(),
		"isSending":  t.controller.IsSending(),
	})
}
