package chat

import (
	"context"
	"fmt"
	"time"
)

// SessionStore exposes the get/set-state/clear contract over a storage backend.
// Callers serialize access per user; the engine does so with its user locks.
type SessionStore struct {
	storage SessionStorage
	now     func() time.Time
}

func NewSessionStore(storage SessionStorage) *SessionStore {
	return &SessionStore{
		storage: storage,
		now:     time.Now,
	}
}

// Get returns the user's session, or an empty one if none is stored.
func (st *SessionStore) Get(ctx context.Context, userID int64) (*Session, error) {
	s, err := st.storage.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if s == nil {
		return NewSession(userID), nil
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	return s, nil
}

// SetState overwrites the state and merges patch into the existing data.
func (st *SessionStore) SetState(ctx context.Context, userID int64, state State, patch map[string]any) (*Session, error) {
	s, err := st.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.State = state
	s.MergeData(patch)
	s.UpdatedAt = st.now()
	if err = st.storage.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return s, nil
}

// Clear drops the active flow together with all scratch data.
func (st *SessionStore) Clear(ctx context.Context, userID int64) error {
	if err := st.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
