package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/gateway"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/dmitrijs2005/chatmate/internal/server/persona"
	"github.com/google/uuid"
)

const (
	// HistoryWindow is the number of trailing transcript messages sent to
	// the gateway with each request.
	HistoryWindow = 15

	// FallbackReply is appended verbatim when the gateway call fails, so
	// the transcript stays self-consistent.
	FallbackReply = "Sorry, I encountered an error. Please try again."
)

// ChatService runs the conversation loop for one session at a time:
// append the user turn, compose the persona prompt, call the gateway
// once, append the reply.
type ChatService struct {
	completer gateway.Completer
	logger    logging.Logger
	now       func() time.Time

	// rng picks welcome variants and is shared across sessions; rand.Rand
	// is not goroutine-safe, so it is locked.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewChatService constructs a ChatService.
func NewChatService(completer gateway.Completer, logger logging.Logger) *ChatService {
	return &ChatService{
		completer: completer,
		logger:    logger.With("module", "chat"),
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Welcome seeds a fresh transcript with the style-appropriate greeting.
// It does nothing once the conversation has started.
func (s *ChatService) Welcome(session *models.Session) *models.Message {
	s.rngMu.Lock()
	content := persona.Welcome(persona.Style(session.Settings().Style), session.UserName, s.now().Hour(), s.rng)
	s.rngMu.Unlock()

	msg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   content,
		Timestamp: s.now(),
	}
	if !session.Transcript.SeedIfEmpty(msg) {
		return nil
	}
	return &msg
}

// Send appends one user message and obtains the assistant reply. On
// gateway failure the fixed fallback reply is appended instead and the
// error is returned alongside it; the session stays authenticated and no
// retry happens.
func (s *ChatService) Send(ctx context.Context, session *models.Session, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message must not be empty", common.ErrValidation)
	}

	session.Transcript.Append(models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: s.now(),
	})

	messages := make([]models.Message, 0, HistoryWindow+1)
	messages = append(messages, models.Message{
		Role:    models.RoleSystem,
		Content: s.systemPrompt(session),
	})
	messages = append(messages, session.Transcript.Window(HistoryWindow)...)

	settings := session.Settings()
	reply, err := s.completer.Complete(ctx, gateway.Request{
		Model:       settings.Model,
		Temperature: settings.Temperature,
		Messages:    messages,
	})
	if err != nil {
		s.logger.Error(ctx, "completion failed", "model", settings.Model, "error", err)
		fallback := models.Message{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   FallbackReply,
			Timestamp: s.now(),
		}
		session.Transcript.Append(fallback)
		return &fallback, fmt.Errorf("%w: %v", common.ErrGateway, err)
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	}
	session.Transcript.Append(msg)
	return &msg, nil
}

// Reset clears the transcript so the next Welcome starts over.
func (s *ChatService) Reset(session *models.Session) {
	session.Transcript.Clear()
}

// systemPrompt renders the personalized prompt, or the generic one when
// no assistant name is configured.
func (s *ChatService) systemPrompt(session *models.Session) string {
	p := session.Persona()
	if p.AssistantName == "" {
		return persona.GenericSystemPrompt
	}

	effective := persona.Resolve(
		persona.Preference(p.AssistantGender),
		persona.Gender(p.Gender),
	)
	return persona.SystemPrompt(p.AssistantName, persona.Style(session.Settings().Style), effective, session.UserName)
}
