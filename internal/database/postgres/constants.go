package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Constraint names from the migrations
const (
	ConstraintSpinsOnePerParticipant = "spins_one_per_participant"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Wheel Operations
const (
	ErrMsgFailedToGetWheel       = "failed to get wheel"
	ErrMsgFailedToGetPrizes      = "failed to get wheel prizes"
	ErrMsgFailedToUpsertWheel    = "failed to upsert wheel"
	ErrMsgFailedToReplacePrizes  = "failed to replace wheel prizes"
	ErrMsgFailedToSetPaused      = "failed to set wheel paused"
	ErrMsgFailedToDecrementStock = "failed to decrement prize stock"
)

// Error Messages - Spin Operations
const (
	ErrMsgFailedToFindSpin       = "failed to find spin"
	ErrMsgFailedToGetSpin        = "failed to get spin"
	ErrMsgFailedToCreateSpin     = "failed to create spin"
	ErrMsgFailedToListSpins      = "failed to list spins"
	ErrMsgFailedToAttachProof    = "failed to attach proof"
	ErrMsgFailedToSetClaimStatus = "failed to update claim status"
)

const spinColumns = `spin_id, wheel_code, participant_key, participant_name, participant_avatar,
	prize_id, prize_label, claim_status, proof_ref, created_at`

// Wheel queries
const (
	queryGetWheel = `SELECT code, title, host_name, is_paused, start_time, end_time, updated_at
		FROM wheels WHERE code = $1`

	queryGetPrizes = `SELECT prize_id, label, weight, stock, color
		FROM wheel_prizes WHERE wheel_code = $1 ORDER BY position`

	queryUpsertWheel = `INSERT INTO wheels (code, title, host_name, is_paused, start_time, end_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (code) DO UPDATE SET
			title = EXCLUDED.title,
			host_name = EXCLUDED.host_name,
			is_paused = EXCLUDED.is_paused,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING updated_at`

	queryDeletePrizes = `DELETE FROM wheel_prizes WHERE wheel_code = $1`

	queryInsertPrize = `INSERT INTO wheel_prizes (wheel_code, prize_id, position, label, weight, stock, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	querySetPaused = `UPDATE wheels SET is_paused = $2, updated_at = NOW() WHERE code = $1`

	// Unlimited stock (-1) matches the guard and is left untouched.
	queryDecrementStock = `UPDATE wheel_prizes
		SET stock = CASE WHEN stock = -1 THEN -1 ELSE stock - 1 END
		WHERE wheel_code = $1 AND prize_id = $2 AND (stock > 0 OR stock = -1)`
)

// Spin queries
const (
	queryFindSpin = `SELECT ` + spinColumns + ` FROM spins
		WHERE wheel_code = $1 AND participant_key = $2`

	queryGetSpin = `SELECT ` + spinColumns + ` FROM spins WHERE spin_id = $1`

	queryInsertSpin = `INSERT INTO spins (spin_id, wheel_code, participant_key, participant_name,
		participant_avatar, prize_id, prize_label, claim_status, proof_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	queryListPendingSpins = `SELECT ` + spinColumns + ` FROM spins
		WHERE participant_key = $1 AND claim_status = 'pending' AND proof_ref IS NULL
		ORDER BY created_at DESC`

	queryAttachProof = `UPDATE spins SET proof_ref = $2, claim_status = 'claimed'
		WHERE spin_id = $1 AND proof_ref IS NULL AND claim_status = 'pending'`

	querySetClaimStatusIfMatches = `UPDATE spins SET claim_status = $3
		WHERE spin_id = $1 AND claim_status = $2`

	queryReopenClaim = `UPDATE spins SET claim_status = 'pending', proof_ref = NULL
		WHERE spin_id = $1 AND claim_status = 'claimed' AND proof_ref = $2`

	queryListRecentWinners = `SELECT ` + spinColumns + ` FROM spins
		WHERE wheel_code = $1 ORDER BY created_at DESC LIMIT $2`
)
