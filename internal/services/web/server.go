package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/docstats/internal/platform/timeouts"
	"github.com/louisbranch/docstats/internal/services/web/backend"
	"github.com/louisbranch/docstats/internal/services/web/credential"
	"github.com/louisbranch/docstats/internal/services/web/localstore"
	"github.com/louisbranch/docstats/internal/services/web/localstore/sqlite"
	"github.com/louisbranch/docstats/internal/services/web/navigation"
	"github.com/louisbranch/docstats/internal/services/web/platform/httpx"
	"github.com/louisbranch/docstats/internal/services/web/platform/observability"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
)

// Config defines startup inputs for the web client.
type Config struct {
	HTTPAddr    string
	APIBaseURL  string
	APITimeout  time.Duration
	StoragePath string
	// GuardReadsStorage makes the guard read the persisted token on every
	// navigation instead of the credential store's in-memory copy.
	GuardReadsStorage bool
	Logger            *log.Logger
}

// Dependencies are the collaborators NewHandler composes.
type Dependencies struct {
	Credentials       Credentials
	Storage           localstore.Storage
	API               DocumentAPI
	GuardReadsStorage bool
	Logger            *log.Logger
}

// Server hosts the web client HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	creds      *credential.Store
	storage    io.Closer
	unwatch    func()
}

// NewHandler builds the root handler: the navigation pipeline plus action
// endpoints, wrapped in the shared middleware chain.
func NewHandler(deps Dependencies) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	guard, err := newGuard(deps)
	if err != nil {
		return nil, err
	}
	nav, err := newNavigator(navigation.DefaultTable(), guard, deps.Credentials, deps.API, logger)
	if err != nil {
		return nil, fmt.Errorf("compose navigator: %w", err)
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.Health, httpx.RequireMethod(http.MethodGet)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})))
	rootMux.Handle(routepath.Logout, httpx.RequireMethod(http.MethodPost)(http.HandlerFunc(nav.logout)))
	rootMux.Handle("/", nav)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

func newGuard(deps Dependencies) (*navigation.Guard, error) {
	if !deps.GuardReadsStorage {
		if deps.Credentials == nil {
			return nil, errors.New("credentials are required")
		}
		return navigation.NewGuard(deps.Credentials), nil
	}
	if deps.Storage == nil {
		return nil, errors.New("storage is required when the guard reads storage")
	}
	if deps.Credentials == nil {
		return nil, errors.New("credentials are required")
	}
	return navigation.NewGuard(navigation.PersistedTokens{
		Storage: deps.Storage,
		Key:     credential.TokenKey,
		Pending: deps.Credentials.ClearPending,
	}), nil
}

// NewServer opens storage, seeds the credential store and constructs the
// web client server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}
	api, err := backend.NewClient(cfg.APIBaseURL, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("build document api client: %w", err)
	}

	storage, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	creds, err := credential.New(ctx, storage, credential.WithLogger(logger))
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("seed credential store: %w", err)
	}
	unwatch := creds.Subscribe(func(state credential.State) {
		logger.Printf("session state changed authenticated=%t", state.Authenticated)
	})

	handler, err := NewHandler(Dependencies{
		Credentials:       creds,
		Storage:           storage,
		API:               api,
		GuardReadsStorage: cfg.GuardReadsStorage,
		Logger:            logger,
	})
	if err != nil {
		unwatch()
		creds.Close()
		_ = storage.Close()
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		creds:   creds,
		storage: storage,
		unwatch: unwatch,
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// Handler returns the composed root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.unwatch != nil {
		s.unwatch()
	}
	if s.creds != nil {
		s.creds.Close()
	}
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			log.Printf("close local storage: %v", err)
		}
	}
}
