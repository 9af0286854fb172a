package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/storage"
)

// ClaimHandler serves claim routes for participants and hosts
type ClaimHandler struct {
	claims claim.Service
	tr     *i18n.Translator
}

// NewClaimHandler creates a ClaimHandler
func NewClaimHandler(claims claim.Service, tr *i18n.Translator) *ClaimHandler {
	return &ClaimHandler{claims: claims, tr: tr}
}

// SetClaimStatusRequest is the host's status update
type SetClaimStatusRequest struct {
	Status string `json:"status" validate:"required,claimstatus"`
}

// HandleListPending lists the caller's prizes still awaiting proof
// @Summary Pending claims
// @Tags claims
// @Produce json
// @Success 200 {object} PendingSpinsResponse
// @Security BearerAuth
// @Router /api/v1/spins/pending [get]
func (h *ClaimHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := participant(w, r, h.tr)
	if !ok {
		return
	}
	spins, err := h.claims.ListPending(r.Context(), p.Key)
	if err != nil {
		respondServiceError(w, r, h.tr, OpListPending, err)
		return
	}

	resp := PendingSpinsResponse{Spins: spins}
	if len(spins) > 0 {
		resp.Message = h.tr.Message(i18n.FromRequest(r), i18n.KeyPendingClaims, len(spins))
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleSubmitProof attaches the caller's proof image to their spin
// @Summary Submit proof of claim
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Spin ID"
// @Param proof formData file true "Proof image (jpeg, png, gif or webp)"
// @Success 200 {object} domain.SpinRecord
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "not the caller's spin"
// @Failure 409 {object} ErrorResponse "proof already attached"
// @Security BearerAuth
// @Router /api/v1/spins/{id}/proof [post]
func (h *ClaimHandler) HandleSubmitProof(w http.ResponseWriter, r *http.Request) {
	p, ok := participant(w, r, h.tr)
	if !ok {
		return
	}
	id, ok := parseSpinID(r, w)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(MaxProofFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: h.tr.Error(i18n.FromRequest(r), domain.ErrInvalidInput),
				Code:  domain.ErrCodeInvalidInput,
			})
			return
		}
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Code: domain.ErrCodeInvalidInput})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile(FormFieldProof)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgMissingProofFile, Code: domain.ErrCodeInvalidInput})
		return
	}
	defer file.Close()

	spin, err := h.claims.SubmitProof(r.Context(), id, p.Key, file)
	if err != nil {
		respondServiceError(w, r, h.tr, OpSubmitProof, err)
		return
	}
	respondJSON(w, http.StatusOK, spin)
}

// HandleSetClaimStatus is the host's claim status update
// @Summary Set claim status
// @Description Moves a spin along pending, claimed and delivered
// @Tags host
// @Accept json
// @Produce json
// @Param id path string true "Spin ID"
// @Param request body SetClaimStatusRequest true "New status"
// @Success 200 {object} domain.SpinRecord
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "transition not allowed"
// @Security ApiKeyAuth
// @Router /api/v1/host/spins/{id}/status [post]
func (h *ClaimHandler) HandleSetClaimStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSpinID(r, w)
	if !ok {
		return
	}
	var req SetClaimStatusRequest
	if err := decodeRequest(w, r, &req, OpSetClaimStatus); err != nil {
		return
	}

	spin, err := h.claims.SetStatus(r.Context(), id, domain.ClaimStatus(req.Status))
	if err != nil {
		respondServiceError(w, r, h.tr, OpSetClaimStatus, err)
		return
	}
	respondJSON(w, http.StatusOK, spin)
}

// HandleGetProof streams a spin's proof image to the host
// @Summary Get proof image
// @Tags host
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param id path string true "Spin ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/host/spins/{id}/proof [get]
func (h *ClaimHandler) HandleGetProof(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSpinID(r, w)
	if !ok {
		return
	}
	rc, mime, err := h.claims.OpenProof(r.Context(), id)
	if errors.Is(err, storage.ErrProofNotFound) {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrMsgProofNotFound, Code: domain.ErrCodeSpinNotFound})
		return
	}
	if err != nil {
		respondServiceError(w, r, h.tr, OpGetProof, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to stream proof", "spin_id", id, "error", err)
	}
}
