package web

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/docstats/internal/services/web/backend"
	"github.com/louisbranch/docstats/internal/services/web/navigation"
	apperrors "github.com/louisbranch/docstats/internal/services/web/platform/errors"
	"github.com/louisbranch/docstats/internal/services/web/platform/httpx"
	"github.com/louisbranch/docstats/internal/services/web/routepath"
	"github.com/louisbranch/docstats/internal/services/web/views"
)

const (
	maxFormBytes   = 64 << 10
	maxUploadBytes = 6 << 20
	maxUploadBody  = 4 * maxUploadBytes
)

func (n *navigator) defaultViews() map[string]viewHandler {
	return map[string]viewHandler{
		navigation.ViewRegister:           {render: n.renderRegister, submit: n.submitRegister},
		navigation.ViewVerifyEmail:        {render: n.renderVerifyEmail, submit: n.submitVerifyEmail},
		navigation.ViewLogin:              {render: n.renderLogin, submit: n.submitLogin},
		navigation.ViewUpload:             {render: n.renderUpload, submit: n.submitUpload},
		navigation.ViewDocumentList:       {render: n.renderDocumentList},
		navigation.ViewDocumentDetail:     {render: n.renderDocumentDetail, submit: n.submitDocumentDetail},
		navigation.ViewDocumentStatistics: {render: n.renderDocumentStatistics},
		navigation.ViewCollectionList:     {render: n.renderCollectionList, submit: n.submitCollectionList},
		navigation.ViewCollectionDetail:   {render: n.renderCollectionDetail, submit: n.submitCollectionDetail},
		navigation.ViewProfile:            {render: n.renderProfile},
	}
}

func (n *navigator) renderRegister(_ *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	return views.Register(page.Copy, views.RegisterForm{}), nil
}

func (n *navigator) submitRegister(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	if err := parseForm(w, r); err != nil {
		n.fail(w, r, loc, *page, views.Register(page.Copy, views.RegisterForm{}), err)
		return
	}
	form := views.RegisterForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Username: strings.TrimSpace(r.PostFormValue("username")),
	}
	password := r.PostFormValue("password")
	if form.Email == "" || form.Username == "" || password == "" {
		n.fail(w, r, loc, *page, views.Register(page.Copy, form), apperrors.E(apperrors.KindInvalidInput, "email, username and password are required"))
		return
	}
	if password != r.PostFormValue("password2") {
		n.fail(w, r, loc, *page, views.Register(page.Copy, form), apperrors.E(apperrors.KindInvalidInput, "passwords do not match"))
		return
	}
	err := n.api.Register(r.Context(), backend.Registration{Email: form.Email, Username: form.Username, Password: password})
	if err != nil {
		n.fail(w, r, loc, *page, views.Register(page.Copy, form), err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.VerifyEmailFor(form.Email))
}

func (n *navigator) renderVerifyEmail(r *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	return views.VerifyEmail(page.Copy, views.VerifyForm{Email: strings.TrimSpace(r.URL.Query().Get("email"))}), nil
}

func (n *navigator) submitVerifyEmail(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	if err := parseForm(w, r); err != nil {
		n.fail(w, r, loc, *page, views.VerifyEmail(page.Copy, views.VerifyForm{}), err)
		return
	}
	form := views.VerifyForm{Email: strings.TrimSpace(r.PostFormValue("email"))}
	if r.PostFormValue("action") == views.ActionResend {
		n.resendCode(w, r, loc, page, form)
		return
	}
	code := strings.TrimSpace(r.PostFormValue("code"))
	if form.Email == "" || code == "" {
		n.fail(w, r, loc, *page, views.VerifyEmail(page.Copy, form), apperrors.E(apperrors.KindInvalidInput, "email and code are required"))
		return
	}
	if err := n.api.VerifyEmail(r.Context(), backend.Verification{Email: form.Email, Code: code}); err != nil {
		n.fail(w, r, loc, *page, views.VerifyEmail(page.Copy, form), err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.LoginWithEmail(form.Email))
}

func (n *navigator) resendCode(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page, form views.VerifyForm) {
	if form.Email == "" {
		n.fail(w, r, loc, *page, views.VerifyEmail(page.Copy, form), apperrors.E(apperrors.KindInvalidInput, "email is required"))
		return
	}
	if err := n.api.ResendCode(r.Context(), form.Email); err != nil {
		n.fail(w, r, loc, *page, views.VerifyEmail(page.Copy, form), err)
		return
	}
	page.Notice = page.Copy.CodeResent
	n.write(w, r, *page, views.VerifyEmail(page.Copy, form))
}

func (n *navigator) renderLogin(r *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	return views.Login(page.Copy, views.LoginForm{Email: strings.TrimSpace(r.URL.Query().Get("email"))}), nil
}

func (n *navigator) submitLogin(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	if err := parseForm(w, r); err != nil {
		n.fail(w, r, loc, *page, views.Login(page.Copy, views.LoginForm{}), err)
		return
	}
	form := views.LoginForm{Email: strings.TrimSpace(r.PostFormValue("email"))}
	password := r.PostFormValue("password")
	if form.Email == "" || password == "" {
		n.fail(w, r, loc, *page, views.Login(page.Copy, form), apperrors.E(apperrors.KindInvalidInput, "email and password are required"))
		return
	}
	pair, err := n.api.Login(r.Context(), backend.Credentials{Email: form.Email, Password: password})
	if err != nil {
		n.fail(w, r, loc, *page, views.Login(page.Copy, form), err)
		return
	}
	if err := n.creds.SetToken(r.Context(), pair.Access); err != nil {
		n.logger.Printf("persist session token: %v", err)
		n.fail(w, r, loc, *page, views.Login(page.Copy, form), apperrors.Wrap(apperrors.KindUnavailable, "could not save the session", err))
		return
	}
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (n *navigator) renderUpload(_ *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	return views.Upload(page.Copy, nil), nil
}

func (n *navigator) submitUpload(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		n.fail(w, r, loc, *page, views.Upload(page.Copy, nil), apperrors.Wrap(apperrors.KindInvalidInput, "upload could not be read", err))
		return
	}
	uploads, err := readUploads(r.MultipartForm.File["files"])
	if err != nil {
		n.fail(w, r, loc, *page, views.Upload(page.Copy, nil), err)
		return
	}
	result, err := n.api.Upload(r.Context(), n.token(), uploads)
	if err != nil {
		n.fail(w, r, loc, *page, views.Upload(page.Copy, nil), err)
		return
	}
	n.write(w, r, *page, views.Upload(page.Copy, &result))
}

func (n *navigator) renderDocumentList(r *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	docs, err := n.api.ListDocuments(r.Context(), n.token())
	if err != nil {
		return nil, err
	}
	return views.DocumentList(page.Copy, docs), nil
}

func (n *navigator) renderDocumentDetail(r *http.Request, loc navigation.Location, page *views.Page) (templ.Component, error) {
	doc, err := n.api.GetDocument(r.Context(), n.token(), loc.Params.Get(routepath.ParamID))
	if err != nil {
		return nil, err
	}
	return views.DocumentDetail(page.Copy, doc), nil
}

func (n *navigator) submitDocumentDetail(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	id := loc.Params.Get(routepath.ParamID)
	err := parseForm(w, r)
	if err == nil {
		if r.PostFormValue("action") != views.ActionDelete {
			err = apperrors.E(apperrors.KindInvalidInput, "unknown document action")
		} else {
			err = n.api.DeleteDocument(r.Context(), n.token(), id)
		}
	}
	if err != nil {
		n.fail(w, r, loc, *page, n.rerender(r, loc, page, n.renderDocumentDetail), err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Documents)
}

func (n *navigator) renderDocumentStatistics(r *http.Request, loc navigation.Location, page *views.Page) (templ.Component, error) {
	stats, err := n.api.DocumentStatistics(r.Context(), n.token(), loc.Params.Get(routepath.ParamID))
	if err != nil {
		return nil, err
	}
	return views.DocumentStatistics(page.Copy, stats), nil
}

func (n *navigator) renderCollectionList(r *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	cols, err := n.api.ListCollections(r.Context(), n.token())
	if err != nil {
		return nil, err
	}
	return views.CollectionList(page.Copy, cols), nil
}

func (n *navigator) submitCollectionList(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	if err := parseForm(w, r); err != nil {
		n.fail(w, r, loc, *page, n.rerender(r, loc, page, n.renderCollectionList), err)
		return
	}
	col, err := n.api.CreateCollection(r.Context(), n.token(), r.PostFormValue("name"))
	if err != nil {
		n.fail(w, r, loc, *page, n.rerender(r, loc, page, n.renderCollectionList), err)
		return
	}
	if col.ID <= 0 {
		httpx.WriteRedirect(w, r, routepath.Collections)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Collection(strconv.FormatInt(col.ID, 10)))
}

func (n *navigator) renderCollectionDetail(r *http.Request, loc navigation.Location, page *views.Page) (templ.Component, error) {
	id := loc.Params.Get(routepath.ParamID)
	col, err := n.api.GetCollection(r.Context(), n.token(), id)
	if err != nil {
		return nil, err
	}
	if len(col.Documents) == 0 {
		return views.CollectionDetail(page.Copy, col, nil), nil
	}
	stats, err := n.api.CollectionStatistics(r.Context(), n.token(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.KindUnauthorized) {
			return nil, err
		}
		n.logger.Printf("collection statistics id=%s: %v", id, err)
		return views.CollectionDetail(page.Copy, col, nil), nil
	}
	return views.CollectionDetail(page.Copy, col, &stats), nil
}

func (n *navigator) submitCollectionDetail(w http.ResponseWriter, r *http.Request, loc navigation.Location, page *views.Page) {
	id := loc.Params.Get(routepath.ParamID)
	next := routepath.Collection(id)
	err := parseForm(w, r)
	if err == nil {
		token := n.token()
		docID := strings.TrimSpace(r.PostFormValue("doc_id"))
		switch r.PostFormValue("action") {
		case views.ActionDelete:
			err = n.api.DeleteCollection(r.Context(), token, id)
			next = routepath.Collections
		case views.ActionAdd:
			err = n.api.AddToCollection(r.Context(), token, id, docID)
		case views.ActionRemove:
			err = n.api.RemoveFromCollection(r.Context(), token, id, docID)
		default:
			err = apperrors.E(apperrors.KindInvalidInput, "unknown collection action")
		}
	}
	if err != nil {
		n.fail(w, r, loc, *page, n.rerender(r, loc, page, n.renderCollectionDetail), err)
		return
	}
	httpx.WriteRedirect(w, r, next)
}

// rerender rebuilds a view body to show next to a failed submission. A view
// that cannot be rebuilt leaves only the error message.
func (n *navigator) rerender(r *http.Request, loc navigation.Location, page *views.Page, render viewRender) templ.Component {
	body, err := render(r, loc, page)
	if err != nil {
		return nil
	}
	return body
}

func (n *navigator) renderProfile(r *http.Request, _ navigation.Location, page *views.Page) (templ.Component, error) {
	token := n.token()
	user, err := n.api.Me(r.Context(), token)
	if err != nil {
		return nil, err
	}
	claims, ok := views.ReadTokenClaims(token)
	return views.Profile(page.Copy, user, claims, ok), nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "form could not be read", err)
	}
	return nil
}

func readUploads(headers []*multipart.FileHeader) ([]backend.Upload, error) {
	if len(headers) == 0 {
		return nil, apperrors.E(apperrors.KindInvalidInput, "choose at least one file")
	}
	uploads := make([]backend.Upload, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxUploadBytes {
			return nil, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("%s is too large", header.Filename))
		}
		file, err := header.Open()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "upload could not be read", err)
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "upload could not be read", err)
		}
		uploads = append(uploads, backend.Upload{Name: header.Filename, Content: content})
	}
	return uploads, nil
}
