// Package session verifies bearer session tokens against an identity provider.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

// Principal is the identity behind a verified session.
type Principal struct {
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	SessionID  string    `json:"sessionId,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Verifier checks a session token and returns its principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (*Principal, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}

// Outcomes reported by Observed.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Observed reports the outcome of every verification made through inner.
// Client errors count as rejected; anything else that fails is an error.
func Observed(inner Verifier, observe func(outcome string)) Verifier {
	return VerifierFunc(func(ctx context.Context, token string) (*Principal, error) {
		principal, err := inner.Verify(ctx, token)
		observe(outcomeOf(err))
		return principal, err
	})
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		return OutcomeRejected
	}
	return OutcomeError
}
