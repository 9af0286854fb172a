package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

type contextKey struct{}

// Verifier resolves a bearer token to a participant
type Verifier interface {
	Verify(token string) (domain.Participant, error)
}

// WithParticipant stores p in ctx
func WithParticipant(ctx context.Context, p domain.Participant) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// ParticipantFromContext returns the authenticated participant, if any
func ParticipantFromContext(ctx context.Context) (domain.Participant, bool) {
	p, ok := ctx.Value(contextKey{}).(domain.Participant)
	return p, ok
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header
func BearerToken(r *http.Request) string {
	h := r.Header.Get(HeaderAuthorization)
	if len(h) < len(BearerPrefix) || !strings.EqualFold(h[:len(BearerPrefix)], BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(BearerPrefix):])
}

// RequireParticipant rejects requests without a valid participant token.
// onReject writes the error response so callers control the error format.
func RequireParticipant(v Verifier, onReject func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := v.Verify(BearerToken(r))
			if err != nil {
				logger.FromContext(r.Context()).Debug(LogMsgTokenRejected, "path", r.URL.Path, "error", err)
				onReject(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithParticipant(r.Context(), p)))
		})
	}
}
