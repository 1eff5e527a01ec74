package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStatus is the outcome of checking a reset token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenMalformed
	TokenBadSignature
	TokenExpired
	TokenWrongPurpose
	TokenUserMissing
	TokenSpent
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenMalformed:
		return "malformed"
	case TokenBadSignature:
		return "bad_signature"
	case TokenExpired:
		return "expired"
	case TokenWrongPurpose:
		return "wrong_purpose"
	case TokenUserMissing:
		return "user_missing"
	case TokenSpent:
		return "spent"
	default:
		return "unknown"
	}
}

// ResetToken is a parsed password reset token.
// Only UserID, ID and ExpiresAt of a TokenValid result are meaningful.
type ResetToken struct {
	Status    TokenStatus
	UserID    int64
	ID        string
	ExpiresAt time.Time
	Err       error
}

// ParseResetToken checks signature, expiry and purpose of a reset token.
// It never returns an error: every failure is reported through Status.
func (j *JWT) ParseResetToken(ctx context.Context, tokenString string) ResetToken {
	claims, err := j.parse(tokenString)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return ResetToken{Status: TokenExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ResetToken{Status: TokenBadSignature, Err: err}
	default:
		return ResetToken{Status: TokenMalformed, Err: err}
	}

	if claims.Purpose != PurposeReset {
		return ResetToken{Status: TokenWrongPurpose, Err: ErrWrongPurpose}
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return ResetToken{Status: TokenMalformed, Err: jwt.ErrTokenMalformed}
	}

	return ResetToken{
		Status:    TokenValid,
		UserID:    claims.UserID,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
