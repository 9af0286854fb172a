package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LuckyWheel_Go/internal/auth"
	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/draw"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

// WheelHandler serves the participant-facing wheel routes
type WheelHandler struct {
	wheels wheel.Service
	draws  draw.Service
	claims claim.Service
	tr     *i18n.Translator
}

// NewWheelHandler creates a WheelHandler
func NewWheelHandler(wheels wheel.Service, draws draw.Service, claims claim.Service, tr *i18n.Translator) *WheelHandler {
	return &WheelHandler{wheels: wheels, draws: draws, claims: claims, tr: tr}
}

// HandleGetWheel returns a wheel's public definition
// @Summary Get wheel
// @Description Returns the wheel's slices and gating fields
// @Tags wheels
// @Produce json
// @Param code path string true "Wheel code"
// @Success 200 {object} WheelView
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/wheels/{code} [get]
func (h *WheelHandler) HandleGetWheel(w http.ResponseWriter, r *http.Request) {
	wh, err := h.wheels.Get(r.Context(), chi.URLParam(r, URLParamCode))
	if err != nil {
		respondServiceError(w, r, h.tr, OpGetWheel, err)
		return
	}
	respondJSON(w, http.StatusOK, newWheelView(wh))
}

// HandleEligibility reports whether the caller may draw right now. The
// answer is advisory; the draw itself re-checks everything.
// @Summary Check eligibility
// @Tags wheels
// @Produce json
// @Param code path string true "Wheel code"
// @Success 200 {object} EligibilityResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/wheels/{code}/eligibility [get]
func (h *WheelHandler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	p, ok := participant(w, r, h.tr)
	if !ok {
		return
	}
	e, err := h.draws.Eligibility(r.Context(), chi.URLParam(r, URLParamCode), p.Key)
	if err != nil {
		respondServiceError(w, r, h.tr, OpEligibility, err)
		return
	}

	resp := EligibilityResponse{Eligible: e.Eligible, Reason: e.Reason}
	if !e.Eligible {
		resp.Message = h.tr.Message(i18n.FromRequest(r), e.Reason)
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleDraw resolves the caller's one draw on the wheel
// @Summary Draw
// @Description Selects a prize, records the spin and takes one unit of stock
// @Tags wheels
// @Produce json
// @Param code path string true "Wheel code"
// @Success 201 {object} DrawResponse
// @Failure 403 {object} ErrorResponse "paused or outside the active window"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "already played, out of stock or stock contention"
// @Security BearerAuth
// @Router /api/v1/wheels/{code}/draw [post]
func (h *WheelHandler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	p, ok := participant(w, r, h.tr)
	if !ok {
		return
	}
	result, err := h.draws.ResolveDraw(r.Context(), chi.URLParam(r, URLParamCode), p)
	if err != nil {
		respondServiceError(w, r, h.tr, OpDraw, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgDrawCompleted,
		"wheel_code", result.Spin.WheelCode,
		"spin_id", result.Spin.ID,
		"prize_id", result.Prize.ID)

	respondJSON(w, http.StatusCreated, DrawResponse{
		Spin:       result.Spin,
		Prize:      newPrizeView(result.Prize),
		SliceIndex: result.SliceIndex,
		SliceCount: result.SliceCount,
		Message:    h.tr.Message(i18n.FromRequest(r), i18n.KeyYouWon, result.Prize.Label),
	})
}

// HandleRecentWinners lists the wheel's latest winners
// @Summary Recent winners
// @Tags wheels
// @Produce json
// @Param code path string true "Wheel code"
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {object} WinnersResponse
// @Security BearerAuth
// @Router /api/v1/wheels/{code}/winners [get]
func (h *WheelHandler) HandleRecentWinners(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r, w)
	if !ok {
		return
	}
	spins, err := h.claims.RecentWinners(r.Context(), chi.URLParam(r, URLParamCode), limit)
	if err != nil {
		respondServiceError(w, r, h.tr, OpRecentWinners, err)
		return
	}
	respondJSON(w, http.StatusOK, WinnersResponse{Winners: newWinnerViews(spins)})
}

// participant returns the authenticated caller or writes a 401.
func participant(w http.ResponseWriter, r *http.Request, tr *i18n.Translator) (domain.Participant, bool) {
	p, ok := auth.ParticipantFromContext(r.Context())
	if !ok {
		RespondUnauthorized(tr)(w, r, domain.ErrUnauthorized)
		return domain.Participant{}, false
	}
	return p, true
}
