package chat

import "context"

// SessionRepository defines the database operations for sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, s *Session) error
	LoadSession(ctx context.Context, userID int64) (*Session, error)
	DeleteSession(ctx context.Context, userID int64) error
}

// RepositoryStorage adapts a database repository to the SessionStorage interface.
type RepositoryStorage struct {
	repo SessionRepository
}

func NewRepositoryStorage(repo SessionRepository) *RepositoryStorage {
	return &RepositoryStorage{repo: repo}
}

func (s *RepositoryStorage) Save(ctx context.Context, session *Session) error {
	return s.repo.SaveSession(ctx, session)
}

func (s *RepositoryStorage) Load(ctx context.Context, userID int64) (*Session, error) {
	return s.repo.LoadSession(ctx, userID)
}

func (s *RepositoryStorage) Delete(ctx context.Context, userID int64) error {
	return s.repo.DeleteSession(ctx, userID)
}
