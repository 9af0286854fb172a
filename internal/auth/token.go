// Package auth issues and verifies participant session tokens.
//
// A host-trusted caller (the login front end) exchanges a verified identity
// for a token; every participant route then reads the identity from the
// token instead of trusting request bodies.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// participantClaims is the token body
type participantClaims struct {
	jwt.RegisteredClaims
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Tokens issues and verifies HS256 participant tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token service. The secret must be at least
// MinSecretLength bytes.
func NewTokens(secret, issuer string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgSecretTooShort)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for p and returns it with its expiry.
func (t *Tokens) Issue(p domain.Participant) (string, time.Time, error) {
	key := domain.NormalizeParticipantKey(p.Key)
	if key == "" {
		return "", time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingKey)
	}

	now := t.now().UTC()
	exp := now.Add(t.ttl)
	claims := participantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   key,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Name:      strings.TrimSpace(p.Name),
		AvatarURL: p.AvatarURL,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses token and returns the participant it was issued for. Every
// failure wraps domain.ErrUnauthorized.
func (t *Tokens) Verify(token string) (domain.Participant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Participant{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgMissingToken)
	}

	var claims participantClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Participant{}, mapJWTError(err)
	}
	if claims.Subject == "" {
		return domain.Participant{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgMissingKey)
	}

	return domain.Participant{
		Key:       claims.Subject,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
	}, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgTokenExpired)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgBadSignature)
	default:
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
}
