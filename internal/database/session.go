package repository

import (
	"StreamBot/bot/chat"
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes makes user_id unique and lets the server expire idle sessions.
func (m *MongoDB) ensureIndexes() error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if m.ttl > 0 {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
		})
	}

	_, err = collection.Indexes().CreateMany(m.ctx, indexes)
	if err != nil {
		return fmt.Errorf("mongodb create indexes: %w", err)
	}
	m.log.Debug("session indexes ready", slog.Duration("ttl", m.ttl))
	return nil
}

// SaveSession upserts a user's session.
func (m *MongoDB) SaveSession(ctx context.Context, s *chat.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	filter := bson.D{{Key: "user_id", Value: s.UserID}}
	update := bson.D{{Key: "$set", Value: s}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// LoadSession retrieves a user's session. Sessions idle longer than the TTL
// count as absent even before the server removes them.
func (m *MongoDB) LoadSession(ctx context.Context, userID int64) (*chat.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}

	var s chat.Session
	err = collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		return nil, m.findError(err)
	}
	if m.ttl > 0 && time.Since(s.UpdatedAt) > m.ttl {
		return nil, nil
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}

	return &s, nil
}

// DeleteSession removes a user's session.
func (m *MongoDB) DeleteSession(ctx context.Context, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}
