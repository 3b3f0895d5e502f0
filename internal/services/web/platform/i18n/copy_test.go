package i18n

import (
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestPagesEnglishTitles(t *testing.T) {
	t.Parallel()

	page := Pages(language.English)
	if page.Lang != "en-US" {
		t.Fatalf("Lang = %q, want %q", page.Lang, "en-US")
	}
	if got := page.Title("login"); got != "Sign in | DocStats" {
		t.Fatalf("Title(login) = %q", got)
	}
	if got := page.Title("document-statistics"); got != "Document statistics | DocStats" {
		t.Fatalf("Title(document-statistics) = %q", got)
	}
	if got := page.Title("missing"); got != AppName {
		t.Fatalf("Title(missing) = %q, want %q", got, AppName)
	}
}

func TestPagesPortugueseTitles(t *testing.T) {
	t.Parallel()

	page := Pages(language.MustParse("pt"))
	if page.Lang != "pt-BR" {
		t.Fatalf("Lang = %q, want %q", page.Lang, "pt-BR")
	}
	if got := page.Title("login"); got != "Entrar | DocStats" {
		t.Fatalf("Title(login) = %q", got)
	}
	if page.NavSignOut != "Sair" {
		t.Fatalf("NavSignOut = %q", page.NavSignOut)
	}
	if page.CodeResent != "Um novo código foi enviado." {
		t.Fatalf("CodeResent = %q", page.CodeResent)
	}
}

func TestPagesUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	page := Pages(language.Japanese)
	if page.Lang != "en-US" {
		t.Fatalf("Lang = %q, want %q", page.Lang, "en-US")
	}
	if page.SignIn != "Sign in" {
		t.Fatalf("SignIn = %q", page.SignIn)
	}
}

func TestResolveTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{name: "default", target: "/login", want: "en-US"},
		{name: "accept language", target: "/login", accept: "pt-BR,pt;q=0.9,en;q=0.5", want: "pt-BR"},
		{name: "query wins", target: "/login?lang=en", accept: "pt-BR", want: "en-US"},
		{name: "query portuguese", target: "/login?lang=pt-PT", want: "pt-BR"},
		{name: "invalid query ignored", target: "/login?lang=%%%", accept: "pt", want: "pt-BR"},
		{name: "unsupported accept", target: "/login", accept: "de-DE", want: "en-US"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/login", nil)
			if _, query, ok := strings.Cut(tc.target, "?"); ok {
				req.URL.RawQuery = query
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			if got := ResolveTag(req).String(); got != tc.want {
				t.Fatalf("ResolveTag() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveTagNilRequest(t *testing.T) {
	t.Parallel()

	if got := ResolveTag(nil).String(); got != "en-US" {
		t.Fatalf("ResolveTag(nil) = %q", got)
	}
}
