package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/docstats/internal/services/web/platform/i18n"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
)

// LoginForm is the sign-in form state.
type LoginForm struct {
	Email string
}

// Login renders the sign-in form.
func Login(c i18n.Copy, form LoginForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return printf(w, `<form method="post" action="%s">`+
			`<label>%s <input type="email" name="email" value="%s" required></label>`+
			`<label>%s <input type="password" name="password" required></label>`+
			`<button type="submit">%s</button></form>`+
			`<p>%s <a href="%s">%s</a></p>`,
			routepath.Login,
			esc(c.Email), esc(form.Email),
			esc(c.Password),
			esc(c.SignIn),
			esc(c.NoAccount), routepath.Register, esc(c.CreateAccount))
	})
}

// RegisterForm is the registration form state.
type RegisterForm struct {
	Email    string
	Username string
}

// Register renders the registration form.
func Register(c i18n.Copy, form RegisterForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return printf(w, `<form method="post" action="%s">`+
			`<label>%s <input type="email" name="email" value="%s" required></label>`+
			`<label>%s <input type="text" name="username" value="%s" required></label>`+
			`<label>%s <input type="password" name="password" required></label>`+
			`<label>%s <input type="password" name="password2" required></label>`+
			`<button type="submit">%s</button></form>`+
			`<p>%s <a href="%s">%s</a></p>`,
			routepath.Register,
			esc(c.Email), esc(form.Email),
			esc(c.Username), esc(form.Username),
			esc(c.Password),
			esc(c.Password2),
			esc(c.CreateAccount),
			esc(c.HaveAccount), routepath.Login, esc(c.SignIn))
	})
}

// VerifyForm is the email verification form state.
type VerifyForm struct {
	Email string
}

// ActionResend marks the verification form post that asks for a new code.
const ActionResend = "resend"

// VerifyEmail renders the verification code form and the resend form.
func VerifyEmail(c i18n.Copy, form VerifyForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return printf(w, `<form method="post" action="%s">`+
			`<label>%s <input type="email" name="email" value="%s" required></label>`+
			`<label>%s <input type="text" name="code" inputmode="numeric" maxlength="6" required></label>`+
			`<button type="submit">%s</button></form>`+
			`<form method="post" action="%s" class="resend">`+
			`<input type="hidden" name="action" value="%s">`+
			`<input type="hidden" name="email" value="%s">`+
			`<button type="submit">%s</button></form>`,
			routepath.VerifyEmail,
			esc(c.Email), esc(form.Email),
			esc(c.Code),
			esc(c.Verify),
			routepath.VerifyEmail, ActionResend, esc(form.Email), esc(c.ResendCode))
	})
}
