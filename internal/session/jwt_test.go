package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	v := NewJWTVerifier("dev_secret", "course-advising")
	token, err := v.Sign(Principal{ExternalID: "user-test-1", Email: "student@example.edu"}, time.Hour)
	require.NoError(t, err)

	principal, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-test-1", principal.ExternalID)
	assert.Equal(t, "student@example.edu", principal.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), principal.ExpiresAt, time.Minute)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTVerifier("other", "").Sign(Principal{ExternalID: "user-test-1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier("dev_secret", "").Verify(context.Background(), token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestJWTVerifierRejectsExpired(t *testing.T) {
	v := NewJWTVerifier("dev_secret", "")
	token, err := v.Sign(Principal{ExternalID: "user-test-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, "session expired", appErrors.FromError(err).Message)
}

func TestJWTVerifierRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-test-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("dev_secret"))
	require.NoError(t, err)

	_, err = NewJWTVerifier("dev_secret", "").Verify(context.Background(), token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
