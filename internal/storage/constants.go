package storage

// DefaultMaxBytes caps a proof upload (5 MiB)
const DefaultMaxBytes = 5 << 20

// File settings
const (
	DirPermissions  = 0o750
	TempFilePattern = ".upload-*"
)

// AllowedTypes are the image formats accepted as proof
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Error Messages
const (
	ErrMsgCreateRoot      = "failed to create proof directory"
	ErrMsgEmptyProof      = "proof is empty"
	ErrMsgProofTooLarge   = "proof exceeds the size limit"
	ErrMsgUnsupportedType = "unsupported proof type"
	ErrMsgBadRef          = "invalid proof reference"
	ErrMsgProofNotFound   = "proof not found"
)

// Log Messages
const (
	LogMsgProofSaved = "Proof stored"
)
