package repository

import (
	"StreamBot/bot/chat"
	"StreamBot/internal/config"
	"StreamBot/internal/lib/sl"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	rd "github.com/go-redis/redis/v9"
)

const sessionKey = "session"

// RedisSessions keeps sessions as JSON strings that expire after the
// configured TTL of inactivity.
type RedisSessions struct {
	redisClient rd.UniversalClient
	namespace   string
	ttl         time.Duration
	log         *slog.Logger
}

func NewRedisSessions(conf *config.Config, logger *slog.Logger) (*RedisSessions, error) {
	redisClient := rd.NewUniversalClient(&rd.UniversalOptions{
		Addrs:    conf.Redis.Addrs,
		Password: conf.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisSessions{
		redisClient: redisClient,
		namespace:   conf.Redis.Namespace,
		ttl:         conf.Session.TTL,
		log:         logger.With(sl.Module("redis")),
	}, nil
}

func (r *RedisSessions) getNamespaceKey(args ...string) string {
	return fmt.Sprintf("%s:%s", r.namespace, strings.Join(args, ":"))
}

func (r *RedisSessions) key(userID int64) string {
	return r.getNamespaceKey(sessionKey, strconv.FormatInt(userID, 10))
}

func (r *RedisSessions) SaveSession(ctx context.Context, s *chat.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = r.redisClient.Set(ctx, r.key(s.UserID), data, r.ttl).Err(); err != nil {
		r.log.With(sl.Err(err)).Error("saving session", slog.Int64("user_id", s.UserID))
		return err
	}
	return nil
}

func (r *RedisSessions) LoadSession(ctx context.Context, userID int64) (*chat.Session, error) {
	data, err := r.redisClient.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, rd.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s chat.Session
	if err = json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	return &s, nil
}

func (r *RedisSessions) DeleteSession(ctx context.Context, userID int64) error {
	return r.redisClient.Del(ctx, r.key(userID)).Err()
}

func (r *RedisSessions) Close() error {
	return r.redisClient.Close()
}
