package prizepool

const (
	ErrMsgEmptyPool      = "prize pool is empty"
	ErrMsgDuplicatePrize = "duplicate prize id"
	ErrMsgInvalidPrize   = "invalid prize"
)
