package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/gateway"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/dmitrijs2005/chatmate/internal/server/persona"
)

// DefaultSessionMaxAge bounds how long an idle session survives.
const DefaultSessionMaxAge = 24 * time.Hour

// SessionManager holds the in-memory per-visit sessions. A visitor with
// no session entry is anonymous; a session always belongs to exactly one
// account. Expired sessions are evicted lazily on access.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	maxAge   time.Duration
	accounts *AccountService
	logger   logging.Logger
}

// NewSessionManager constructs a SessionManager backed by the account
// service for restore lookups.
func NewSessionManager(maxAge time.Duration, accounts *AccountService, logger logging.Logger) *SessionManager {
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	return &SessionManager{
		sessions: make(map[string]*models.Session),
		maxAge:   maxAge,
		accounts: accounts,
		logger:   logger.With("module", "sessions"),
	}
}

// Create opens an authenticated session for the given account. The
// transcript starts empty and settings get their defaults.
func (sm *SessionManager) Create(user *models.User, remember bool) *models.Session {
	// session ids go into cookies and must be unguessable
	id, err := common.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}

	session := models.NewSession(id, user, remember, models.Settings{
		Model:       gateway.DefaultModel,
		Temperature: gateway.DefaultTemperature,
		Style:       string(persona.DefaultStyle),
	})

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	return session
}

// Get returns the live session for an id, refreshing its idle timer, or
// common.ErrSessionNotFound when the id is unknown or expired.
func (sm *SessionManager) Get(id string) (*models.Session, error) {
	if id == "" {
		return nil, common.ErrSessionNotFound
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}

	if time.Since(session.LastSeen()) > sm.maxAge {
		delete(sm.sessions, id)
		return nil, common.ErrSessionNotFound
	}

	session.Touch(time.Now())
	return session, nil
}

// Restore re-establishes an authenticated session from a remembered
// account id without a password. If the id no longer resolves to an
// account, it returns (nil, nil): the visitor falls back to anonymous
// rather than seeing an error.
func (sm *SessionManager) Restore(ctx context.Context, accountID string) (*models.Session, error) {
	user, err := sm.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			sm.logger.Info(ctx, "remembered account no longer exists", "account_id", accountID)
			return nil, nil
		}
		return nil, fmt.Errorf("restore session: %w", err)
	}

	session := sm.Create(user, true)
	sm.logger.Info(ctx, "session restored", "username", user.UserName)
	return session, nil
}

// Destroy removes a session. The transcript dies with it. Unknown ids
// are ignored.
func (sm *SessionManager) Destroy(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, ok := sm.sessions[id]; ok {
		session.Transcript.Clear()
		delete(sm.sessions, id)
	}
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
