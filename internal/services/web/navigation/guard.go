package navigation

import (
	"context"

	"github.com/louisbranch/docstats/internal/services/web/localstore"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
)

// DecisionKind is the outcome of a guard evaluation.
type DecisionKind int

const (
	// Proceed lets the navigation commit.
	Proceed DecisionKind = iota
	// Redirect replaces the navigation with one to Decision.To.
	Redirect
)

// String returns the lowercase decision name used in logs and spans.
func (k DecisionKind) String() string {
	switch k {
	case Proceed:
		return "proceed"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Kind DecisionKind
	To   string
}

// TokenSource reports the current session token. Implementations must not
// block on the network; a failed read reports no token.
type TokenSource interface {
	Token() (string, bool)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, bool)

// Token calls f.
func (f TokenFunc) Token() (string, bool) {
	if f == nil {
		return "", false
	}
	return f()
}

// Guard decides whether a navigation may proceed.
type Guard struct {
	tokens    TokenSource
	loginPath string
}

// GuardOption customizes a Guard.
type GuardOption func(*Guard)

// WithLoginPath overrides the redirect target for blocked navigations.
func WithLoginPath(path string) GuardOption {
	return func(g *Guard) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// NewGuard returns a guard reading the session token from tokens. A nil
// source leaves every protected route unreachable.
func NewGuard(tokens TokenSource, options ...GuardOption) *Guard {
	g := &Guard{tokens: tokens, loginPath: routepath.Login}
	for _, option := range options {
		if option != nil {
			option(g)
		}
	}
	return g
}

// LoginPath returns the redirect target for blocked navigations.
func (g *Guard) LoginPath() string {
	if g == nil || g.loginPath == "" {
		return routepath.Login
	}
	return g.loginPath
}

// Evaluate decides the navigation from current to target. current does not
// influence the decision today.
func (g *Guard) Evaluate(target Location, current Location) Decision {
	if !target.Route.Meta.RequiresAuth {
		return Decision{Kind: Proceed}
	}
	if g != nil && g.tokens != nil {
		if token, ok := g.tokens.Token(); ok && token != "" {
			return Decision{Kind: Proceed}
		}
	}
	return Decision{Kind: Redirect, To: g.LoginPath()}
}

// PersistedTokens reads the token straight from storage on every call,
// bypassing any in-memory copy. Read failures report no token.
type PersistedTokens struct {
	Storage localstore.Storage
	Key     string
	// Pending, when set, reports a sign-out that storage has not recorded
	// yet. While it returns true the persisted value is ignored.
	Pending func() bool
}

// Token reads the persisted token.
func (p PersistedTokens) Token() (string, bool) {
	if p.Storage == nil || p.Key == "" {
		return "", false
	}
	if p.Pending != nil && p.Pending() {
		return "", false
	}
	value, err := p.Storage.GetItem(context.Background(), p.Key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
