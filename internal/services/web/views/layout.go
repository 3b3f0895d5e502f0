// Package views renders the web client's pages.
package views

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/docstats/internal/services/web/platform/httpx"
	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
)

// Page carries the chrome shared by every view.
type Page struct {
	View          string
	Copy          i18n.Copy
	Authenticated bool
	Error         string
	Notice        string
	StatusCode    int
}

// Title returns the localized document title.
func (p Page) Title() string {
	return p.Copy.Title(p.View)
}

// Write renders body inside the layout, or alone for HTMX requests.
func Write(w http.ResponseWriter, r *http.Request, page Page, body templ.Component) error {
	if w == nil {
		return nil
	}
	status := page.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	if body == nil {
		body = templ.NopComponent
	}
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if httpx.IsHTMXRequest(r) {
		return mainContent(page).Render(templ.WithChildren(ctx, body), w)
	}
	return Layout(page).Render(templ.WithChildren(ctx, body), w)
}

// Layout is the full HTML document around the page's children.
func Layout(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Copy.Lang
		if lang == "" {
			lang = "en-US"
		}
		if err := printf(w, `<!doctype html><html lang="%s"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			esc(lang), esc(page.Title())); err != nil {
			return err
		}
		if err := nav(page).Render(ctx, w); err != nil {
			return err
		}
		if err := mainContent(page).Render(ctx, w); err != nil {
			return err
		}
		return printf(w, `</body></html>`)
	})
}

func mainContent(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := printf(w, `<main id="main" data-view="%s">`, esc(page.View)); err != nil {
			return err
		}
		if page.Error != "" {
			if err := printf(w, `<p class="error" role="alert">%s</p>`, esc(page.Error)); err != nil {
				return err
			}
		}
		if page.Notice != "" {
			if err := printf(w, `<p class="notice">%s</p>`, esc(page.Notice)); err != nil {
				return err
			}
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		return printf(w, `</main>`)
	})
}

func nav(page Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !page.Authenticated {
			return printf(w, `<header><a href="%s">%s</a></header>`, routepath.Login, esc(i18n.AppName))
		}
		c := page.Copy
		return printf(w, `<header><nav><a href="%s">%s</a> <a href="%s">%s</a> <a href="%s">%s</a> <a href="%s">%s</a> `+
			`<form method="post" action="%s"><button type="submit">%s</button></form></nav></header>`,
			routepath.Root, esc(c.NavUpload),
			routepath.Documents, esc(c.NavDocuments),
			routepath.Collections, esc(c.NavCollections),
			routepath.Profile, esc(c.NavProfile),
			routepath.Logout, esc(c.NavSignOut))
	})
}

func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func esc(value string) string {
	return templ.EscapeString(value)
}
