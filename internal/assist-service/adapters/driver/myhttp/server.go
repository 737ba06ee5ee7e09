package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"road-assist/internal/assist-service/adapters/driven/bm"
	"road-assist/internal/assist-service/adapters/driven/cache"
	"road-assist/internal/assist-service/adapters/driven/db"
	"road-assist/internal/assist-service/adapters/driven/notification"
	"road-assist/internal/assist-service/adapters/driver/myhttp/handle"
	"road-assist/internal/assist-service/adapters/driver/myhttp/middleware"
	"road-assist/internal/assist-service/adapters/driver/myhttp/ws"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/assist-service/core/services"
	"road-assist/internal/config"
	"road-assist/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IAssistBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	// matching works without the cache, just slower
	matchCache, err := cache.New(s.appCtx, s.cfg.Redis, s.mylog)
	if err != nil {
		mylog.Warn("redis unavailable, matching runs uncached", "err", err.Error())
		matchCache = nil
	}

	s.Configure(matchCache)

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AssistServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AssistServicePort)
	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and handlers and registers routes.
func (s *Server) Configure(matchCache ports.IMatchCache) {
	// Repositories
	providerRepo := db.NewProviderRepo(s.db)
	requestRepo := db.NewRequestRepo(s.db)

	// websocket dispatcher + notification fan-out
	dispatcher := ws.NewDispatcher(s.mylog)
	notifier := notification.New(s.appCtx, s.mylog, dispatcher, s.mb)

	// services
	matcherService := services.NewMatcherService(s.appCtx, s.mylog, providerRepo, matchCache)
	requestService := services.NewRequestService(s.appCtx, s.mylog, requestRepo, providerRepo, notifier)
	providerService := services.NewProviderService(s.appCtx, s.mylog, providerRepo, requestRepo)

	// handlers
	matchHandler := handle.NewMatchHandler(matcherService, s.mylog)
	requestsHandler := handle.NewRequestsHandler(requestService, providerService, s.mylog)
	providerHandler := handle.NewProviderHandler(providerService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// matching
	s.mux.Handle("POST /match-providers", authMiddleware.WrapOptional(matchHandler.Match()))

	// request lifecycle
	s.mux.Handle("POST /request-help", authMiddleware.Wrap(middleware.RoleUser, requestsHandler.CreateRequest()))
	s.mux.Handle("PUT /requests/{request_id}/accept", authMiddleware.Wrap(middleware.RoleProvider, requestsHandler.Accept()))
	s.mux.Handle("PUT /requests/{request_id}/decline", authMiddleware.Wrap(middleware.RoleProvider, requestsHandler.Decline()))
	s.mux.Handle("PUT /requests/{request_id}/complete", authMiddleware.Wrap(middleware.RoleProvider, requestsHandler.Complete()))
	s.mux.Handle("PUT /requests/{request_id}/cancel", authMiddleware.Wrap(middleware.RoleUser, requestsHandler.Cancel()))
	s.mux.Handle("GET /users/{user_id}/requests", authMiddleware.Wrap(middleware.RoleUser, requestsHandler.UserRequests()))

	// provider self-service
	s.mux.Handle("GET /providers/profile", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.Profile()))
	s.mux.Handle("GET /providers/dashboard", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.Dashboard()))
	s.mux.Handle("GET /providers/requests/pending", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.PendingRequests()))
	s.mux.Handle("GET /providers/requests/history", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.History()))
	s.mux.Handle("PUT /providers/{provider_id}/availability", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.SetAvailability()))
	s.mux.Handle("PUT /providers/{provider_id}/location", authMiddleware.Wrap(middleware.RoleProvider, providerHandler.UpdateLocation()))

	// websocket channels
	s.mux.Handle("/ws/users/{user_id}", dispatcher.UserHandler())
	s.mux.Handle("/ws/providers/{provider_id}", dispatcher.ProviderHandler())
}
