package repository

import (
	"context"
	"errors"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// ErrTxClosed is returned by in-process transactions used after Commit or
// Rollback. It carries the same text as pgx.ErrTxClosed.
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// LogMsgRollbackFailed is logged when a deferred rollback itself fails
const LogMsgRollbackFailed = "Failed to rollback transaction"

// SafeRollback is deferred right after BeginTx. After a successful Commit the
// rollback reports a closed transaction, which is expected and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}
