package contract

import "ai-docgen-be/pkg/store"

// SessionRepository holds live working sessions. Implementations decide
// durability: the memory store evicts on TTL, the redis store survives
// process restarts.
type SessionRepository interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
}
