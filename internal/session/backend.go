package session

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Identity is an authenticated participant. Token is empty for in-process
// backends.
type Identity struct {
	Participant domain.Participant
	Token       string
	ExpiresAt   time.Time
}

// Backend is the authoritative side of a session. Every call may suspend on
// the network; transport failures surface as domain.ErrNetworkFailure.
type Backend interface {
	Authenticate(ctx context.Context, p domain.Participant) (Identity, error)
	LoadWheel(ctx context.Context, id Identity, code string) (*domain.Wheel, error)
	ResolveDraw(ctx context.Context, id Identity, code string) (*domain.DrawResult, error)
	ListPendingSpins(ctx context.Context, id Identity) ([]domain.SpinRecord, error)
	SubmitProof(ctx context.Context, id Identity, spinID uuid.UUID, proof io.Reader) (*domain.SpinRecord, error)
}
