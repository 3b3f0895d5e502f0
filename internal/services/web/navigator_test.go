package web

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/louisbranch/docstats/internal/services/web/credential"
	"github.com/louisbranch/docstats/internal/services/web/localstore"
	"github.com/louisbranch/docstats/internal/services/web/navigation"
)

func newTestNavigator(t *testing.T) (*navigator, *credential.Store) {
	t.Helper()
	creds, err := credential.New(context.Background(), localstore.NewMemory())
	if err != nil {
		t.Fatalf("credential.New() error = %v", err)
	}
	nav, err := newNavigator(navigation.DefaultTable(), navigation.NewGuard(creds), creds, &fakeAPI{}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newNavigator() error = %v", err)
	}
	return nav, creds
}

func TestNavigatorRecordsEvaluationSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	nav, _ := newTestNavigator(t)
	nav.tracer = provider.Tracer("test")

	req := httptest.NewRequest(http.MethodGet, "/documents/4", nil)
	req.Header.Set("Referer", "http://example.com/login")
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	nav.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "navigation.evaluate" {
		t.Fatalf("span name = %q", spans[0].Name())
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["navigation.route"].AsString(); got != "/documents/:id" {
		t.Fatalf("navigation.route = %q", got)
	}
	if got := attrs["navigation.decision"].AsString(); got != "redirect" {
		t.Fatalf("navigation.decision = %q", got)
	}
	if got := attrs["navigation.from"].AsString(); got != "/login" {
		t.Fatalf("navigation.from = %q", got)
	}
	if got := attrs["navigation.redirect_to"].AsString(); got != "/login" {
		t.Fatalf("navigation.redirect_to = %q", got)
	}
}

func TestNavigatorSkipsGuardForUnknownPaths(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	nav, _ := newTestNavigator(t)
	nav.tracer = provider.Tracer("test")

	rec := httptest.NewRecorder()
	nav.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if n := len(recorder.Ended()); n != 0 {
		t.Fatalf("guard evaluated %d times for unknown path", n)
	}
}

func TestCurrentLocationFromReferer(t *testing.T) {
	t.Parallel()

	nav, _ := newTestNavigator(t)
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "none"},
		{name: "same host", referer: "http://example.com/collections/3", want: "/collections/:id"},
		{name: "relative", referer: "/profile", want: "/profile"},
		{name: "other host", referer: "http://elsewhere.test/profile"},
		{name: "unknown path", referer: "http://example.com/missing"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			req.Host = "example.com"
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := nav.currentLocation(req).Route.Path; got != tc.want {
				t.Fatalf("currentLocation() route = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewNavigatorRequiresBoundViews(t *testing.T) {
	t.Parallel()

	creds, err := credential.New(context.Background(), localstore.NewMemory())
	if err != nil {
		t.Fatalf("credential.New() error = %v", err)
	}
	table, err := navigation.NewTable([]navigation.Route{{Path: "/reports", View: "reports"}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if _, err := newNavigator(table, navigation.NewGuard(creds), creds, &fakeAPI{}, nil); err == nil {
		t.Fatalf("expected unbound view error")
	}
	if _, err := newNavigator(nil, navigation.NewGuard(creds), creds, &fakeAPI{}, nil); err == nil {
		t.Fatalf("expected missing table error")
	}
}
