package models

import (
	"sync"
	"time"
)

// Settings are the adjustable chat parameters of a session.
type Settings struct {
	Model       string
	Temperature float64
	Style       string
}

// Session is the per-visit state for one browser session. It references
// an account by id but does not own it. Mutable state is guarded by an
// internal mutex: two tabs sharing one cookie may hit the server
// concurrently.
type Session struct {
	ID        string
	UserID    string
	UserName  string
	Remember  bool
	CreatedAt time.Time

	Transcript Transcript

	mu              sync.Mutex
	gender          string
	assistantName   string
	assistantGender string
	settings        Settings
	lastSeen        time.Time
}

// NewSession opens an authenticated session for the account with the
// given initial chat settings. The transcript starts empty.
func NewSession(id string, user *User, remember bool, settings Settings) *Session {
	now := time.Now()
	return &Session{
		ID:              id,
		UserID:          user.ID,
		UserName:        user.UserName,
		Remember:        remember,
		CreatedAt:       now,
		gender:          user.Gender,
		assistantName:   user.AssistantName,
		assistantGender: user.AssistantGender,
		settings:        settings,
		lastSeen:        now,
	}
}

// Authenticated reports whether the session is bound to an account.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// Persona returns the current persona configuration.
func (s *Session) Persona() PersonaFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PersonaFields{
		Gender:          s.gender,
		AssistantName:   s.assistantName,
		AssistantGender: s.assistantGender,
	}
}

// SetPersona replaces the persona configuration.
func (s *Session) SetPersona(gender, assistantName, assistantGender string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gender = gender
	s.assistantName = assistantName
	s.assistantGender = assistantGender
}

// Settings returns the current chat settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetModel changes the completion model.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Model = model
}

// SetTemperature changes the sampling temperature.
func (s *Session) SetTemperature(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Temperature = t
}

// SetStyle changes the conversation style.
func (s *Session) SetStyle(style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Style = style
}

// Touch updates the idle timer.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = t
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
