package persistence

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// DefaultSessionCacheSize bounds the number of cached sessions
const DefaultSessionCacheSize = 1024

// CachedSessionRepository fronts a SessionRepository with an LRU of recent
// lookups. Writes go through to the backing store and evict the cached entry.
type CachedSessionRepository struct {
	backing user.SessionRepository
	cache   *lru.Cache[string, *user.Session]
}

// NewCachedSessionRepository wraps backing with an LRU of the given size
func NewCachedSessionRepository(backing user.SessionRepository, size int) (*CachedSessionRepository, error) {
	if size <= 0 {
		size = DefaultSessionCacheSize
	}
	cache, err := lru.New[string, *user.Session](size)
	if err != nil {
		return nil, err
	}
	return &CachedSessionRepository{backing: backing, cache: cache}, nil
}

// FindByID serves from the cache when possible
func (r *CachedSessionRepository) FindByID(ctx context.Context, sessionID string) (*user.Session, error) {
	if s, ok := r.cache.Get(sessionID); ok {
		return s, nil
	}

	s, err := r.backing.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	r.cache.Add(sessionID, s)
	return s, nil
}

// Add writes through to the backing store
func (r *CachedSessionRepository) Add(ctx context.Context, session *user.Session) error {
	if err := r.backing.Add(ctx, session); err != nil {
		return err
	}
	r.cache.Add(session.ID, session)
	return nil
}

// Delete removes the session from the cache and the backing store
func (r *CachedSessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Remove(sessionID)
	return r.backing.Delete(ctx, sessionID)
}

// DeleteExpired purges expired sessions from both layers
func (r *CachedSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	for _, id := range r.cache.Keys() {
		if s, ok := r.cache.Peek(id); ok && s.IsExpired(now) {
			r.cache.Remove(id)
		}
	}
	return r.backing.DeleteExpired(ctx, now)
}

// Len returns the number of cached sessions
func (r *CachedSessionRepository) Len() int {
	return r.cache.Len()
}
