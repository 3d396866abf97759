package chat

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage keeps sessions in process memory. The TTL is refreshed on
// every state change.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	cleanup := ttl / 2
	if cleanup <= 0 || cleanup > 10*time.Minute {
		cleanup = 10 * time.Minute
	}
	return &MemoryStorage{cache: cache.New(ttl, cleanup)}
}

func (ms *MemoryStorage) Save(_ context.Context, s *Session) error {
	ms.cache.Set(memoryKey(s.UserID), s.Clone(), cache.DefaultExpiration)
	return nil
}

func (ms *MemoryStorage) Load(_ context.Context, userID int64) (*Session, error) {
	v, ok := ms.cache.Get(memoryKey(userID))
	if !ok {
		return nil, nil
	}
	return v.(*Session).Clone(), nil
}

func (ms *MemoryStorage) Delete(_ context.Context, userID int64) error {
	ms.cache.Delete(memoryKey(userID))
	return nil
}

func memoryKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
