package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// UserCache is the subset of the Redis cache used for session lookups
type UserCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// CachedAuthProvider memoises CurrentUser per access token. Cache failures
// fall through to the wrapped provider.
type CachedAuthProvider struct {
	next   AuthProvider
	cache  UserCache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedAuthProvider wraps next with a token to user cache
func NewCachedAuthProvider(next AuthProvider, cache UserCache, ttl time.Duration, log *logger.Logger) *CachedAuthProvider {
	return &CachedAuthProvider{next: next, cache: cache, ttl: ttl, logger: log}
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:user:" + hex.EncodeToString(sum[:])
}

// CurrentUser implements AuthProvider
func (p *CachedAuthProvider) CurrentUser(ctx context.Context) (*User, error) {
	token := AccessToken(ctx)
	if token == "" {
		return nil, nil
	}
	key := tokenCacheKey(token)

	var cached User
	found, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		p.logger.WarnWithErr(err, "session cache read failed")
	} else if found {
		return &cached, nil
	}

	user, err := p.next.CurrentUser(ctx)
	if err != nil || user == nil {
		return user, err
	}
	if err := p.cache.Set(ctx, key, user, p.ttl); err != nil {
		p.logger.WarnWithErr(err, "session cache write failed")
	}
	return user, nil
}

// SignOut implements AuthProvider
func (p *CachedAuthProvider) SignOut(ctx context.Context) error {
	if token := AccessToken(ctx); token != "" {
		if err := p.cache.Invalidate(ctx, tokenCacheKey(token)); err != nil {
			p.logger.WarnWithErr(err, "session cache invalidate failed")
		}
	}
	return p.next.SignOut(ctx)
}
