package session

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/draw"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

// LocalBackend runs a session against in-process services, without HTTP.
type LocalBackend struct {
	Wheels wheel.Service
	Draws  draw.Service
	Claims claim.Service
}

var _ Backend = (*LocalBackend)(nil)

// Authenticate trusts the given identity; there is no login step in process.
func (b *LocalBackend) Authenticate(_ context.Context, p domain.Participant) (Identity, error) {
	p.Key = domain.NormalizeParticipantKey(p.Key)
	if p.Key == "" {
		return Identity{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNotAuthenticated)
	}
	return Identity{Participant: p}, nil
}

func (b *LocalBackend) LoadWheel(ctx context.Context, _ Identity, code string) (*domain.Wheel, error) {
	return b.Wheels.Get(ctx, code)
}

func (b *LocalBackend) ResolveDraw(ctx context.Context, id Identity, code string) (*domain.DrawResult, error) {
	return b.Draws.ResolveDraw(ctx, code, id.Participant)
}

func (b *LocalBackend) ListPendingSpins(ctx context.Context, id Identity) ([]domain.SpinRecord, error) {
	return b.Claims.ListPending(ctx, id.Participant.Key)
}

func (b *LocalBackend) SubmitProof(ctx context.Context, id Identity, spinID uuid.UUID, proof io.Reader) (*domain.SpinRecord, error) {
	return b.Claims.SubmitProof(ctx, spinID, id.Participant.Key, proof)
}
