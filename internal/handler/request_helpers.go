package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// ValidationErrorResponse lists the offending fields of a rejected body
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// decodeRequest fills req from the JSON body and runs its validate tags.
// On failure the 400 has already been written and the handler just returns.
func decodeRequest(w http.ResponseWriter, r *http.Request, req interface{}, op string) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logFor(r).Warn(LogMsgDecodeFailed, "op", op, "error", err)
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Code: domain.ErrCodeInvalidInput})
		return err
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Code:   domain.ErrCodeInvalidInput,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// parseLimit reads ?limit=. Absent means zero, which services treat as
// their default.
func parseLimit(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw := r.URL.Query().Get(QueryParamLimit)
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

func parseSpinID(r *http.Request, w http.ResponseWriter) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, URLParamID))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSpinID)
		return uuid.Nil, false
	}
	return id, true
}

func logFor(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
