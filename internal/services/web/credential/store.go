package credential

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/louisbranch/docstats/internal/services/web/localstore"
)

// TokenKey is the fixed storage key the session token is persisted under.
const TokenKey = "access_token"

// ErrEmptyToken rejects SetToken calls without a usable token.
var ErrEmptyToken = errors.New("session token is required")

// State is the observable credential state after a mutation.
type State struct {
	Authenticated bool
}

// Observer is notified synchronously after every token mutation.
type Observer func(State)

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage degradations.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the session token in memory and mirrors it to storage.
type Store struct {
	storage localstore.Storage
	logger  *log.Logger

	mu    sync.RWMutex
	token string
	// clearPending is set while a sign-out could not be written to storage.
	clearPending bool

	observersMu sync.Mutex
	nextID      int
	observers   map[int]Observer
}

// New builds a Store and seeds the in-memory token from storage once.
// An absent or unreadable entry leaves the token absent.
func New(ctx context.Context, storage localstore.Storage, options ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("credential storage is required")
	}
	s := &Store{
		storage:   storage,
		logger:    log.Default(),
		observers: map[int]Observer{},
	}
	for _, option := range options {
		if option != nil {
			option(s)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	value, err := storage.GetItem(ctx, TokenKey)
	switch {
	case err == nil:
		s.token = value
	case errors.Is(err, localstore.ErrNotFound):
	default:
		s.logger.Printf("credential seed degraded to signed-out: %v", err)
	}
	return s, nil
}

// SetToken persists value and then makes it the in-memory token. When the
// storage write fails the in-memory token is left as it was.
func (s *Store) SetToken(ctx context.Context, value string) error {
	if value == "" {
		return ErrEmptyToken
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if err := s.storage.SetItem(ctx, TokenKey, value); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session token: %w", err)
	}
	s.token = value
	s.clearPending = false
	s.mu.Unlock()

	s.notify(State{Authenticated: true})
	return nil
}

// ClearToken drops the in-memory token and removes the persisted entry.
// Memory is cleared first, so a storage failure still leaves the client
// signed out. When the removal fails an empty value is written in its place,
// which every reader treats as absent; if that fails too the clear stays
// pending until storage accepts a later SetToken or ClearToken. The removal
// error is returned either way. Clearing an absent token is a no-op for
// storage.
func (s *Store) ClearToken(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	s.token = ""
	err := s.storage.RemoveItem(ctx, TokenKey)
	s.clearPending = false
	if err != nil {
		if blankErr := s.storage.SetItem(ctx, TokenKey, ""); blankErr != nil {
			s.clearPending = true
			s.logger.Printf("session token sign-out pending: remove: %v; blank: %v", err, blankErr)
		}
	}
	s.mu.Unlock()

	s.notify(State{Authenticated: false})
	if err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// ClearPending reports whether the last ClearToken could not reach storage,
// so the persisted entry may still hold a token that must not be honoured.
func (s *Store) ClearPending() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearPending
}

// Token returns the in-memory token and whether one is present.
func (s *Store) Token() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a non-empty token is held in memory.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// Subscribe registers fn for mutation notifications. The returned func
// removes the registration.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	if s.observers == nil {
		s.observers = map[int]Observer{}
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.observersMu.Lock()
		defer s.observersMu.Unlock()
		delete(s.observers, id)
	}
}

// Close drops every observer. The token itself stays persisted.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	s.observers = map[int]Observer{}
}

func (s *Store) notify(state State) {
	s.observersMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observersMu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
