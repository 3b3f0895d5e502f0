package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/docstats/internal/services/web/backend"
	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
)

// TokenClaims is what the profile page shows about the session token.
// The claims are read without verification and are for display only.
type TokenClaims struct {
	Subject   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ReadTokenClaims decodes display claims from a JWT session token. Opaque
// tokens yield ok=false.
func ReadTokenClaims(token string) (TokenClaims, bool) {
	if token == "" {
		return TokenClaims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, false
	}
	out := TokenClaims{}
	out.Subject, _ = claims.GetSubject()
	if value, ok := claims["user_id"]; ok {
		out.UserID = fmt.Sprint(value)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.UTC()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.UTC()
	}
	return out, true
}

// Profile renders the signed-in account.
func Profile(c i18n.Copy, user backend.User, claims TokenClaims, hasClaims bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := printf(w, `<dl class="profile"><dt>%s</dt><dd>%s</dd><dt>%s</dt><dd>%s</dd>`,
			esc(c.Username), esc(user.Username), esc(c.Email), esc(user.Email)); err != nil {
			return err
		}
		if hasClaims && !claims.ExpiresAt.IsZero() {
			if err := printf(w, `<dt>exp</dt><dd><time datetime="%s">%s</time></dd>`,
				claims.ExpiresAt.Format(time.RFC3339), claims.ExpiresAt.Format(time.DateTime)); err != nil {
				return err
			}
		}
		return printf(w, `</dl>`)
	})
}
