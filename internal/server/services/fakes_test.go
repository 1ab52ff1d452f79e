package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/gateway"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/google/uuid"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeUsersRepo is a test-only in-memory users.Repository with error
// injection fields.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	byName map[string]*models.User

	createErr error
	getErr    error
	touchErr  error

	touched []string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byID:   make(map[string]*models.User),
		byName: make(map[string]*models.User),
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[user.UserName]; ok {
		return nil, common.ErrUsernameTaken
	}
	for _, u := range f.byName {
		if u.Email == user.Email {
			return nil, common.ErrEmailTaken
		}
	}

	clone := *user
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	clone.CreatedAt = time.Now()
	f.byID[clone.ID] = &clone
	f.byName[clone.UserName] = &clone
	return &clone, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) TouchLastLogin(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, username)
	if u, ok := f.byName[username]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (f *fakeUsersRepo) UpdatePersona(ctx context.Context, username, gender, assistantName, assistantGender string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.byName[username]; ok {
		u.Gender = gender
		u.AssistantName = assistantName
		u.AssistantGender = assistantGender
	}
	return nil
}

func (f *fakeUsersRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.byID[id]; ok {
		delete(f.byName, u.UserName)
		delete(f.byID, id)
	}
}

// fakeCompleter records the last request and returns a canned reply or
// error. Safe for concurrent calls.
type fakeCompleter struct {
	reply string
	err   error

	mu      sync.Mutex
	calls   int
	lastReq gateway.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req gateway.Request) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCompleter) lastRequest() gateway.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}
