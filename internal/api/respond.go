package api

import (
	"encoding/json"
	"net/http"

	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSON(w, status, resp)
}

// writeError maps a service error to its status and user message. URLs and
// causes only reach the operator log.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	classified, ok := errors.Classified(err)
	if !ok {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeErrorBody(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
		return
	}

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("code", classified.Code),
		zap.Any("context", classified.Context),
		zap.Error(err),
	}
	if classified.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("Request failed", fields...)
	} else {
		h.logger.Info("Request rejected", fields...)
	}

	writeErrorBody(w, classified.StatusCode, classified.Code, classified.UserMessage())
}
