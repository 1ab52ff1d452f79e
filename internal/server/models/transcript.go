package models

import "sync"

// Transcript is the append-only ordered log of messages exchanged in one
// session. It is cleared as a whole on logout or explicit reset, never
// edited in place. All methods are safe for concurrent use: requests
// from two tabs can land on the same session at once.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, m)
}

// SeedIfEmpty appends m only when the transcript has no messages yet,
// reporting whether it did. The check and the append are one atomic
// step, so concurrent callers cannot both seed.
func (t *Transcript) SeedIfEmpty(m Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) > 0 {
		return false
	}
	t.messages = append(t.messages, m)
	return true
}

// Messages returns the full transcript in insertion order. The returned
// slice is a copy.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Window returns up to the last n messages in original order, dropping
// the oldest first.
func (t *Transcript) Window(n int) []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || len(t.messages) == 0 {
		return nil
	}
	start := 0
	if len(t.messages) > n {
		start = len(t.messages) - n
	}
	out := make([]Message, len(t.messages)-start)
	copy(out, t.messages[start:])
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Clear discards all messages.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}

// Stats counts messages by author for the session menu.
type TranscriptStats struct {
	Total     int `json:"total"`
	User      int `json:"user"`
	Assistant int `json:"assistant"`
}

// Stats returns per-role message counts.
func (t *Transcript) Stats() TranscriptStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := TranscriptStats{Total: len(t.messages)}
	for _, m := range t.messages {
		switch m.Role {
		case RoleUser:
			s.User++
		case RoleAssistant:
			s.Assistant++
		}
	}
	return s
}
