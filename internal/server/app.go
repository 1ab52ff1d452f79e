// Package server initializes and runs the ChatMate application server:
// it builds the logger, opens the credential store, wires the services,
// and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/config"
	"github.com/dmitrijs2005/chatmate/internal/server/gateway"
	"github.com/dmitrijs2005/chatmate/internal/server/httpapi"
	"github.com/dmitrijs2005/chatmate/internal/server/repositories/users"
	"github.com/dmitrijs2005/chatmate/internal/server/services"
	"github.com/dmitrijs2005/chatmate/internal/server/storage"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	accounts   *services.AccountService
	sessions   *services.SessionManager
	chat       *services.ChatService
	logCleanup func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger, cleanup := logging.Setup(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))

	if cfg.APIKey == "" {
		_ = cleanup()
		return nil, errors.New("missing Groq API key: set GROQ_API_KEY or the -k flag")
	}

	db, dialect, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var repo users.Repository
	switch dialect {
	case storage.DialectPostgres:
		repo = users.NewPostgresRepository(db)
	default:
		repo = users.NewSQLiteRepository(db)
	}

	completer, err := gateway.New(cfg.APIKey, cfg.BaseEndpoint)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("gateway init error: %w", err)
	}

	accounts := services.NewAccountService(repo, logger)
	sessions := services.NewSessionManager(cfg.SessionMaxAge, accounts, logger)
	chat := services.NewChatService(completer, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		accounts:   accounts,
		sessions:   sessions,
		chat:       chat,
		logCleanup: cleanup,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.accounts,
		app.sessions,
		app.chat,
		app.config.SecretKey,
		app.config.RememberTokenValidityDuration,
	)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	if err := app.logCleanup(); err != nil {
		app.logger.Error(ctx, "error closing log file", "error", err)
	}
}
