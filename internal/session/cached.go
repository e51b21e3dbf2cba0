package session

import (
	"context"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// Cache is the subset of the cache service used to remember verified sessions.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedVerifier remembers successful verifications so repeated requests with
// the same token skip the provider round trip. Raw tokens are never used as keys.
type CachedVerifier struct {
	inner  Verifier
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewCachedVerifier wraps inner. Entries live for at most ttl and never past the session expiry.
func NewCachedVerifier(inner Verifier, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedVerifier{inner: inner, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// CacheKey derives the cache key for a token.
func CacheKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// Verify returns a cached principal when one is still valid, otherwise defers to the wrapped verifier.
func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	key := CacheKey(token)
	now := v.now()

	var cached Principal
	hit, err := v.cache.Get(ctx, key, &cached)
	if err != nil {
		v.logger.Debug("session cache lookup failed", zap.Error(err))
	}
	if hit && (cached.ExpiresAt.IsZero() || cached.ExpiresAt.After(now)) {
		return &cached, nil
	}

	principal, err := v.inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	ttl := v.ttl
	if !principal.ExpiresAt.IsZero() {
		if remaining := principal.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		if err := v.cache.Set(ctx, key, principal, ttl); err != nil {
			v.logger.Debug("session cache write failed", zap.Error(err))
		}
	}
	return principal, nil
}
