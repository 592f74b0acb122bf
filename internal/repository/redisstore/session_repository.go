package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/store"
)

const keyPrefix = "docgen:session:"

// SessionRepository keeps sessions in redis so they survive restarts and
// can be shared across instances. Satisfies the same contract as the
// in-memory store; redis failures are logged and treated as a miss.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewSessionRepository(client *redis.Client, ttl time.Duration, log logger.ILogger) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("SessionRepository", "failed to serialize session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err,
		})
		return
	}
	if err := r.client.Set(context.Background(), keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		r.logger.Error("SessionRepository", "failed to save session to redis", map[string]interface{}{
			"session_id": session.ID,
			"error":      err,
		})
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	data, err := r.client.Get(context.Background(), keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Error("SessionRepository", "failed to read session from redis", map[string]interface{}{
				"session_id": sessionID,
				"error":      err,
			})
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("SessionRepository", "corrupt session payload in redis", map[string]interface{}{
			"session_id": sessionID,
			"error":      err,
		})
		return nil, false
	}
	return &session, true
}
