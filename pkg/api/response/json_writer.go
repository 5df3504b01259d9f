package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/darta-hq/darta-assistant/pkg/domain"
	"github.com/darta-hq/darta-assistant/pkg/logger"
)

type JSONResponseWriter struct{}

func (j *JSONResponseWriter) WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding success response", logger.Err(err))
	}
}

func (j *JSONResponseWriter) WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("encoding error response", logger.Err(err))
	}
}

// WriteDomainError maps the error taxonomy onto HTTP statuses: unsupported
// formats are the client's problem, a busy session is a conflict, a missing
// capture device is the service's.
func (j *JSONResponseWriter) WriteDomainError(w http.ResponseWriter, err error) {
	j.WriteErrorResponse(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrSendInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDeviceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
