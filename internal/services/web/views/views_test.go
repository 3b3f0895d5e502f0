package views

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/language"

	"github.com/louisbranch/docstats/internal/services/web/backend"
	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
)

func TestWriteRendersLayoutWithTitleAndNav(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	page := Page{View: "document-list", Copy: i18n.Pages(language.English), Authenticated: true}
	if err := Write(rec, req, page, DocumentList(page.Copy, nil)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{
		"<title>Documents | DocStats</title>",
		`data-view="document-list"`,
		`action="/logout"`,
		"Nothing here yet.",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %s", want, body)
		}
	}
}

func TestWriteHTMXRendersFragmentOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("HX-Request", "true")
	page := Page{View: "login", Copy: i18n.Pages(language.English), Error: "bad <creds>", StatusCode: http.StatusUnauthorized}
	if err := Write(rec, req, page, Login(page.Copy, LoginForm{Email: "ada@example.com"})); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("HTMX response rendered full layout: %s", body)
	}
	if !strings.Contains(body, "bad &lt;creds&gt;") {
		t.Fatalf("error not escaped: %s", body)
	}
	if !strings.Contains(body, `value="ada@example.com"`) {
		t.Fatalf("email not prefilled: %s", body)
	}
}

func TestSignedOutLayoutHidesNav(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	page := Page{View: "register", Copy: i18n.Pages(language.MustParse("pt-BR"))}
	if err := Layout(page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if strings.Contains(body, "/logout") {
		t.Fatalf("signed-out layout shows logout: %s", body)
	}
	if !strings.Contains(body, `lang="pt-BR"`) || !strings.Contains(body, "Criar conta | DocStats") {
		t.Fatalf("body = %s", body)
	}
}

func TestDocumentViewsEscapeAndLink(t *testing.T) {
	t.Parallel()

	c := i18n.Pages(language.English)
	var buf bytes.Buffer
	docs := []backend.Document{{ID: 4, Name: "<b>.txt", WordCount: 3}}
	if err := DocumentList(c, docs).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, `href="/documents/4"`) || !strings.Contains(body, `href="/documents/4/statistics"`) {
		t.Fatalf("links missing: %s", body)
	}
	if strings.Contains(body, "<b>") {
		t.Fatalf("name not escaped: %s", body)
	}

	buf.Reset()
	stats := backend.DocumentStatistics{Name: "b.txt", Terms: []backend.TermWeight{{Word: "quark", TF: 0.5, IDF: 1.25}}}
	if err := DocumentStatistics(c, stats).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<td>quark</td><td>0.500000</td><td>1.250000</td>") {
		t.Fatalf("table = %s", buf.String())
	}
}

func TestCollectionDetailRendersManagementForms(t *testing.T) {
	t.Parallel()

	c := i18n.Pages(language.English)
	col := backend.Collection{ID: 9, Name: "papers", Documents: []backend.Document{{ID: 4, Name: "a.txt", WordCount: 3}}}
	stats := &backend.CollectionStatistics{CollectionID: 9, DocumentsCount: 1, TopWords: []backend.CollectionTerm{{Word: "quark", TotalTF: 0.25, IDF: 1.5}}}
	var buf bytes.Buffer
	if err := CollectionDetail(c, col, stats).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	for _, want := range []string{
		`<form method="post" action="/collections/9" class="delete"><input type="hidden" name="action" value="delete">`,
		`<input type="hidden" name="action" value="add">`,
		`<input type="hidden" name="action" value="remove"><input type="hidden" name="doc_id" value="4">`,
		"Documents: 1",
		"<td>quark</td><td>0.250000</td><td>1.500000</td>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %s", want, body)
		}
	}

	buf.Reset()
	if err := CollectionDetail(c, backend.Collection{ID: 9, Name: "papers"}, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing here yet.") || strings.Contains(buf.String(), "tfidf") {
		t.Fatalf("empty collection = %s", buf.String())
	}
}

func TestVerifyEmailRendersResendForm(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := VerifyEmail(i18n.Pages(language.English), VerifyForm{Email: "ada@example.com"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, `<input type="hidden" name="action" value="resend"><input type="hidden" name="email" value="ada@example.com">`) {
		t.Fatalf("resend form missing: %s", body)
	}
	if !strings.Contains(body, "Send a new code") {
		t.Fatalf("resend label missing: %s", body)
	}
}

func TestReadTokenClaims(t *testing.T) {
	t.Parallel()

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"sub":     "ada",
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	claims, ok := ReadTokenClaims(token)
	if !ok {
		t.Fatalf("ReadTokenClaims() ok = false")
	}
	if claims.Subject != "ada" || claims.UserID != "7" || !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("claims = %+v", claims)
	}

	if _, ok := ReadTokenClaims("abc123"); ok {
		t.Fatalf("opaque token parsed as JWT")
	}
	if _, ok := ReadTokenClaims(""); ok {
		t.Fatalf("empty token parsed as JWT")
	}
}
