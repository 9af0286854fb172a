package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

// HostHandler serves the host's wheel management routes
type HostHandler struct {
	wheels wheel.Service
	tr     *i18n.Translator
}

// NewHostHandler creates a HostHandler
func NewHostHandler(wheels wheel.Service, tr *i18n.Translator) *HostHandler {
	return &HostHandler{wheels: wheels, tr: tr}
}

// UpsertWheelRequest replaces a wheel definition. Prize order fixes slice
// positions.
type UpsertWheelRequest struct {
	Title     string         `json:"title" validate:"max=200"`
	HostName  string         `json:"host_name" validate:"max=100"`
	Paused    bool           `json:"paused"`
	StartTime *time.Time     `json:"start_time"`
	EndTime   *time.Time     `json:"end_time"`
	Prizes    []domain.Prize `json:"prizes" validate:"required,min=1,max=64,dive"`
}

// SetPausedRequest pauses or resumes a wheel
type SetPausedRequest struct {
	Paused *bool `json:"paused" validate:"required"`
}

// HandleUpsertWheel creates or replaces a wheel
// @Summary Upsert wheel
// @Tags host
// @Accept json
// @Produce json
// @Param code path string true "Wheel code"
// @Param request body UpsertWheelRequest true "Wheel definition"
// @Success 200 {object} domain.Wheel
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/host/wheels/{code} [put]
func (h *HostHandler) HandleUpsertWheel(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, URLParamCode)
	var req UpsertWheelRequest
	if err := decodeRequest(w, r, &req, OpUpsertWheel); err != nil {
		return
	}
	logFor(r).Debug(LogMsgUpsertRequested, "wheel_code", code, "prize_count", len(req.Prizes))

	saved, err := h.wheels.Upsert(r.Context(), &domain.Wheel{
		Code:      code,
		Title:     req.Title,
		HostName:  req.HostName,
		Paused:    req.Paused,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Prizes:    req.Prizes,
	})
	if err != nil {
		respondServiceError(w, r, h.tr, OpUpsertWheel, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// HandleSetPaused pauses or resumes a wheel
// @Summary Pause or resume wheel
// @Tags host
// @Accept json
// @Produce json
// @Param code path string true "Wheel code"
// @Param request body SetPausedRequest true "Pause flag"
// @Success 200 {object} domain.Wheel
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/host/wheels/{code}/pause [post]
func (h *HostHandler) HandleSetPaused(w http.ResponseWriter, r *http.Request) {
	var req SetPausedRequest
	if err := decodeRequest(w, r, &req, OpPauseWheel); err != nil {
		return
	}
	saved, err := h.wheels.SetPaused(r.Context(), chi.URLParam(r, URLParamCode), *req.Paused)
	if err != nil {
		respondServiceError(w, r, h.tr, OpPauseWheel, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
