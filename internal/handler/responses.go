package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code is the stable machine
// readable error code; Error is localized for display.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Helper functions for responding

var bufferPool = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

// respondJSON encodes into a pooled buffer first so an encoding failure
// never leaves a half-written body behind a 200.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusForCode maps a domain error code to an HTTP status
func statusForCode(code string) int {
	switch code {
	case domain.ErrCodeWheelNotFound, domain.ErrCodeSpinNotFound:
		return http.StatusNotFound
	case domain.ErrCodeWheelPaused, domain.ErrCodeOutsideWindow,
		domain.ErrCodeWheelNotStarted, domain.ErrCodeWheelEnded:
		return http.StatusForbidden
	case domain.ErrCodeAlreadyPlayed, domain.ErrCodeOutOfStock, domain.ErrCodeStockContention,
		domain.ErrCodeProofAttached, domain.ErrCodeInvalidStatus:
		return http.StatusConflict
	case domain.ErrCodeUnauthorized:
		return http.StatusForbidden
	case domain.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case domain.ErrCodeUploadFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondServiceError maps a service error to its status, code and a message
// in the caller's language. Internal errors are logged and never echoed.
func respondServiceError(w http.ResponseWriter, r *http.Request, tr *i18n.Translator, op string, err error) {
	code := domain.ErrorCode(err)
	status := statusForCode(code)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Info(op+" rejected", "code", code, "error", err)
	}
	respondJSON(w, status, ErrorResponse{
		Error: tr.Error(i18n.FromRequest(r), err),
		Code:  code,
	})
}

// RespondUnauthorized is the participant-token rejection response.
func RespondUnauthorized(tr *i18n.Translator) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: tr.Error(i18n.FromRequest(r), err),
			Code:  domain.ErrCodeUnauthorized,
		})
	}
}
