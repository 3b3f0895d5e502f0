package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/docstats/internal/platform/otel"
	"github.com/louisbranch/docstats/internal/services/web/navigation"
	apperrors "github.com/louisbranch/docstats/internal/services/web/platform/errors"
	"github.com/louisbranch/docstats/internal/services/web/platform/httpx"
	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
	"github.com/louisbranch/docstats/internal/services/web/views"
)

// viewRender builds the component for a GET of the bound view.
type viewRender func(r *http.Request, loc navigation.Location, page *views.Page) (templ.Component, error)

// viewSubmit handles a form POST to the bound view.
type viewSubmit func(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page)

type viewHandler struct {
	render viewRender
	submit viewSubmit
}

// navigator resolves a request against the route table, runs the guard and
// then renders or redirects.
type navigator struct {
	table  *navigation.Table
	guard  *navigation.Guard
	creds  Credentials
	api    DocumentAPI
	logger *log.Logger
	tracer trace.Tracer
	views  map[string]viewHandler
}

func newNavigator(table *navigation.Table, guard *navigation.Guard, creds Credentials, api DocumentAPI, logger *log.Logger) (*navigator, error) {
	if table == nil {
		return nil, errors.New("route table is required")
	}
	if guard == nil {
		return nil, errors.New("navigation guard is required")
	}
	if creds == nil {
		return nil, errors.New("credentials are required")
	}
	if api == nil {
		return nil, errors.New("document api is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	n := &navigator{
		table:  table,
		guard:  guard,
		creds:  creds,
		api:    api,
		logger: logger,
		tracer: otel.Tracer("web/navigation"),
	}
	n.views = n.defaultViews()
	for _, route := range table.Routes() {
		if _, ok := n.views[route.View]; !ok {
			return nil, errors.New("no view bound for " + route.View)
		}
	}
	return n, nil
}

func (n *navigator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target, ok := n.table.Resolve(r.URL.EscapedPath())
	if !ok {
		httpx.WriteError(w, apperrors.E(apperrors.KindNotFound, "page not found"))
		return
	}

	decision := n.evaluate(r.Context(), target, n.currentLocation(r))
	if decision.Kind == navigation.Redirect {
		httpx.WriteRedirect(w, r, decision.To)
		return
	}

	handler := n.views[target.Route.View]
	page := n.page(r, target)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		n.render(w, r, target, page, handler.render)
	case http.MethodPost:
		if handler.submit == nil {
			w.Header().Set("Allow", "GET, HEAD")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.submit(w, r, target, &page)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (n *navigator) evaluate(ctx context.Context, target navigation.Location, current navigation.Location) navigation.Decision {
	_, span := n.tracer.Start(ctx, "navigation.evaluate", trace.WithAttributes(
		attribute.String("navigation.route", target.Route.Path),
		attribute.String("navigation.view", target.Route.View),
		attribute.Bool("navigation.requires_auth", target.Route.Meta.RequiresAuth),
		attribute.String("navigation.from", current.Route.Path),
	))
	defer span.End()

	decision := n.guard.Evaluate(target, current)
	span.SetAttributes(attribute.String("navigation.decision", decision.Kind.String()))
	if decision.To != "" {
		span.SetAttributes(attribute.String("navigation.redirect_to", decision.To))
	}
	return decision
}

// currentLocation resolves the same-origin Referer as the navigation source.
func (n *navigator) currentLocation(r *http.Request) navigation.Location {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return navigation.Location{}
	}
	parsed, err := url.Parse(referer)
	if err != nil || (parsed.Host != "" && parsed.Host != r.Host) {
		return navigation.Location{}
	}
	loc, _ := n.table.Resolve(parsed.EscapedPath())
	return loc
}

func (n *navigator) page(r *http.Request, target navigation.Location) views.Page {
	return views.Page{
		View:          target.Route.View,
		Copy:          i18n.Pages(i18n.ResolveTag(r)),
		Authenticated: n.creds.IsAuthenticated(),
	}
}

func (n *navigator) render(w http.ResponseWriter, r *http.Request, target navigation.Location, page views.Page, render viewRender) {
	component, err := render(r, target, &page)
	if err != nil {
		n.fail(w, r, target, page, nil, err)
		return
	}
	n.write(w, r, page, component)
}

// fail renders page with err. An Unauthorized API answer on a protected
// route means the session is gone: the token is cleared and the user is
// sent to sign in.
func (n *navigator) fail(w http.ResponseWriter, r *http.Request, target navigation.Location, page views.Page, body templ.Component, err error) {
	if apperrors.Is(err, apperrors.KindUnauthorized) && target.Route.Meta.RequiresAuth {
		if clearErr := n.creds.ClearToken(r.Context()); clearErr != nil {
			n.logger.Printf("clear rejected session token: %v", clearErr)
		}
		httpx.WriteRedirect(w, r, n.guard.LoginPath())
		return
	}
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		n.logger.Printf("view failed view=%s path=%s err=%v", target.Route.View, target.Path, err)
	}
	page.Error = apperrors.PublicMessage(err)
	page.StatusCode = apperrors.HTTPStatus(err)
	n.write(w, r, page, body)
}

func (n *navigator) write(w http.ResponseWriter, r *http.Request, page views.Page, body templ.Component) {
	if err := views.Write(w, r, page, body); err != nil {
		n.logger.Printf("render view=%s: %v", page.View, err)
	}
}

func (n *navigator) token() string {
	token, _ := n.creds.Token()
	return token
}

// logout clears the session and returns to the sign-in page. The API call is
// best effort; the local token is cleared first.
func (n *navigator) logout(w http.ResponseWriter, r *http.Request) {
	token := n.token()
	if err := n.creds.ClearToken(r.Context()); err != nil {
		n.logger.Printf("clear session token: %v", err)
	}
	if token != "" {
		if err := n.api.Logout(r.Context(), token); err != nil {
			n.logger.Printf("document api logout: %v", err)
		}
	}
	httpx.WriteRedirect(w, r, n.guard.LoginPath())
}
