// Package session tracks in-progress document edits across CLI runs.
//
// When the interactive editor opens a document it records a session: the
// document path, the content hash at open time, and the cursor position
// inside the hierarchy. On the next `ipcraft edit` the session is looked up
// by document path so the editor can restore the selection, and a stale
// content hash flags that the file changed on disk since the last edit.
//
// Sessions are stored as JSON files under ~/.config/ipcraft/sessions/ and
// expire after DefaultTTL.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session records the editing state of one document.
type Session struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"` // absolute path of the edited file
	DocHash   string    `json:"doc_hash"` // content hash at last save/open
	Cursor    Cursor    `json:"cursor"`   // last selection in the editor
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cursor is a position inside the document hierarchy. Empty names mean the
// level above is selected.
type Cursor struct {
	Map      string `json:"map,omitempty"`
	Block    string `json:"block,omitempty"`
	Register string `json:"register,omitempty"`
	Field    string `json:"field,omitempty"`
}

// IsExpired reports whether the session has exceeded its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch resets the expiration clock.
func (s *Session) Touch() {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(DefaultTTL)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns nil, nil if the session does
	// not exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Find retrieves the most recently updated session for a document path.
	// Returns nil, nil if no live session references it.
	Find(ctx context.Context, documentPath string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is how long an idle session survives before Cleanup removes it.
const DefaultTTL = 30 * 24 * time.Hour

// New creates a session for the given document.
func New(documentPath, docHash string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Document:  documentPath,
		DocHash:   docHash,
		ExpiresAt: now.Add(DefaultTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
