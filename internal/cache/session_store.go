package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session is the process-wide active-session pointer: which candidate and
// interview are live right now. One interview session is active at a time;
// pause or completion clears the pointer. Transient UI state (current
// screen, draft form fields) is deliberately not stored.
type Session struct {
	CandidateID string `json:"candidate_id"`
	InterviewID string `json:"interview_id,omitempty"`
}

// ErrNoSession is returned when no active session pointer is stored.
var ErrNoSession = errors.New("no active session")

// SessionStore persists the active-session pointer under a fixed key so a
// restarted process can offer resume-or-restart.
type SessionStore interface {
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

const sessionKey = "interview:session:active"

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a redis-backed session store. A zero ttl
// keeps the pointer until it is cleared.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (r *redisSessionStore) Get(ctx context.Context) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session pointer: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("corrupt session pointer: %w", err)
	}
	return &session, nil
}

func (r *redisSessionStore) Set(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session pointer: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session pointer: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session pointer: %w", err)
	}
	return nil
}

// MemorySessionStore is an in-process store for tests and development.
type MemorySessionStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Get(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemorySessionStore) Set(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

func (m *MemorySessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
