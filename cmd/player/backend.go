package main

import (
	"context"
	"os"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/bootstrap"
	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/client"
	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/draw"
	"github.com/osse101/LuckyWheel_Go/internal/memstore"
	"github.com/osse101/LuckyWheel_Go/internal/session"
	"github.com/osse101/LuckyWheel_Go/internal/storage"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

const (
	localCacheSize = 16
	localCacheTTL  = time.Minute
	localProofDir  = "lucky-wheel-proofs-*"
)

// newBackend talks to the server at opts.APIURL, or builds an in-memory
// stack seeded from opts.WheelsDir when no URL is given.
func newBackend(ctx context.Context, opts options) (session.Backend, func(), error) {
	if opts.APIURL != "" {
		c := client.New(opts.APIURL, opts.APIKey)
		c.Language = opts.Lang
		return c, func() {}, nil
	}

	store := memstore.New()
	wheels := wheel.NewService(store, localCacheSize, localCacheTTL)
	if err := bootstrap.SyncWheels(ctx, opts.WheelsDir, wheels); err != nil {
		return nil, nil, err
	}

	dir, err := os.MkdirTemp("", localProofDir)
	if err != nil {
		return nil, nil, err
	}
	proofs, err := storage.NewFileStore(dir, 0)
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}

	return &session.LocalBackend{
		Wheels: wheels,
		Draws:  draw.NewService(store, nil, nil, wheels, 0),
		Claims: claim.NewService(store, proofs, nil, 0),
	}, func() { os.RemoveAll(dir) }, nil
}

func participant(opts options) domain.Participant {
	return domain.Participant{Key: opts.Email, Name: opts.Name}
}
