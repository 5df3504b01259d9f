package handler

import (
	"net/http"

	"github.com/darta-hq/darta-assistant/pkg/api/response"
)

type health struct {
	writer response.JSONResponseWriter
}

func NewHealth() *health {
	return &health{}
}

func (h *health) Get(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}
