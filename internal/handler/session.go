package handler

import (
	"net/http"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
)

// TokenIssuer signs participant tokens
type TokenIssuer interface {
	Issue(p domain.Participant) (string, time.Time, error)
}

// SessionHandler exchanges a verified identity for a participant token.
// It sits behind the host API key: only the trusted login front end calls it.
type SessionHandler struct {
	tokens TokenIssuer
	tr     *i18n.Translator
}

// NewSessionHandler creates a SessionHandler
func NewSessionHandler(tokens TokenIssuer, tr *i18n.Translator) *SessionHandler {
	return &SessionHandler{tokens: tokens, tr: tr}
}

// CreateSessionRequest carries an identity the caller has already verified
type CreateSessionRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Name      string `json:"name" validate:"max=100,excludesall=\x00\n\r\t"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// SessionResponse is a signed participant token
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleCreateSession issues a participant token
// @Summary Create participant session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Verified identity"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/session [post]
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeRequest(w, r, &req, OpCreateSession); err != nil {
		return
	}

	token, exp, err := h.tokens.Issue(domain.Participant{Key: req.Email, Name: req.Name, AvatarURL: req.AvatarURL})
	if err != nil {
		respondServiceError(w, r, h.tr, OpCreateSession, err)
		return
	}
	logFor(r).Info(LogMsgSessionIssued, "expires_at", exp)
	respondJSON(w, http.StatusCreated, SessionResponse{Token: token, ExpiresAt: exp})
}
