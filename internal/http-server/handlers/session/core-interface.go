package session

import (
	"StreamBot/bot/chat"
	"context"
)

type Core interface {
	Session(ctx context.Context, userID int64) (*chat.Session, error)
	Reset(ctx context.Context, userID int64) error
	Describe() []string
}
