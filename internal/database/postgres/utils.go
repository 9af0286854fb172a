package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx so reads can run either
// inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != PgErrorCodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func getWheel(ctx context.Context, q querier, code string) (*domain.Wheel, error) {
	var w domain.Wheel
	err := q.QueryRow(ctx, queryGetWheel, code).Scan(
		&w.Code, &w.Title, &w.HostName, &w.Paused, &w.StartTime, &w.EndTime, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWheelNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWheel, err)
	}

	rows, err := q.Query(ctx, queryGetPrizes, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizes, err)
	}
	prizes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Prize, error) {
		var p domain.Prize
		err := row.Scan(&p.ID, &p.Label, &p.Weight, &p.Stock, &p.Color)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizes, err)
	}
	w.Prizes = prizes
	return &w, nil
}

func scanSpin(row pgx.Row) (*domain.SpinRecord, error) {
	var s domain.SpinRecord
	var status string
	err := row.Scan(
		&s.ID, &s.WheelCode, &s.ParticipantKey, &s.ParticipantName, &s.ParticipantAvatar,
		&s.PrizeID, &s.PrizeLabel, &status, &s.ProofRef, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.ClaimStatus = domain.ClaimStatus(status)
	return &s, nil
}

func findSpin(ctx context.Context, q querier, code, participantKey string) (*domain.SpinRecord, error) {
	spin, err := scanSpin(q.QueryRow(ctx, queryFindSpin, code, participantKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFindSpin, err)
	}
	return spin, nil
}

func collectSpins(rows pgx.Rows) ([]domain.SpinRecord, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpinRecord, error) {
		s, err := scanSpin(row)
		if err != nil {
			return domain.SpinRecord{}, err
		}
		return *s, nil
	})
}
