// Package httpapi exposes the JSON API consumed by the browser UI:
// signup and login, session state, the chat loop, and settings.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/services"
)

type Server struct {
	address          string
	accounts         *services.AccountService
	sessions         *services.SessionManager
	chat             *services.ChatService
	logger           logging.Logger
	jwtSecret        []byte
	rememberValidity time.Duration
}

func NewServer(a string, l logging.Logger, as *services.AccountService, sm *services.SessionManager, cs *services.ChatService, secretKey string, rememberValidity time.Duration) (*Server, error) {
	return &Server{
		address:          a,
		logger:           l.With("module", "http_server"),
		accounts:         as,
		sessions:         sm,
		chat:             cs,
		jwtSecret:        []byte(secretKey),
		rememberValidity: rememberValidity,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
