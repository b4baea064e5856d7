// Package session stores interaction state for diagram viewers.
//
// A session remembers which node is hovered and selected for one viewer of
// a diagram, so a browser, the HTTP API or the terminal explorer can pick
// up where it left off. Sessions hold only [interact.State]; geometry is
// recomputed from the dataset.
//
// Backends:
//   - [MemoryStore]: in-process storage for a single server
//   - [RedisStore]: shared storage for multi-instance deployments
//   - [FileStore]: JSON files, used by the CLI explorer to resume
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New("sample", session.DefaultTTL)
//	_ = store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // not found or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
)

// Session is one viewer's interaction state.
type Session struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	State     interact.State `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Touch records a state change and extends the expiry by ttl.
func (s *Session) Touch(ttl time.Duration) {
	s.UpdatedAt = time.Now()
	s.Extend(ttl)
}

// Extend pushes the expiry to ttl from now without recording a state
// change. A ttl of zero leaves the expiry alone.
func (s *Session) Extend(ttl time.Duration) {
	if ttl > 0 {
		s.ExpiresAt = time.Now().Add(ttl)
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get returns nil, nil when the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions. It may be a no-op.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 2 * time.Hour

// New creates a session with a random id for the dataset named by source.
// A ttl of zero never expires.
func New(source string, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}
