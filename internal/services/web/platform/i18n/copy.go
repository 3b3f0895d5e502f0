// Package i18n localizes the web client's page copy.
package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AppName is the product name shown in titles.
const AppName = "DocStats"

// LangParam selects a language explicitly.
const LangParam = "lang"

var (
	tagEnglish    = language.MustParse("en-US")
	tagPortuguese = language.MustParse("pt-BR")
	matcher       = language.NewMatcher([]language.Tag{tagEnglish, tagPortuguese})
)

// Copy holds translatable copy for the web client pages.
type Copy struct {
	Lang   string
	Titles map[string]string

	NavDocuments   string
	NavCollections string
	NavUpload      string
	NavProfile     string
	NavSignOut     string

	Email         string
	Username      string
	Password      string
	Password2     string
	FirstName     string
	LastName      string
	Code          string
	SignIn        string
	CreateAccount string
	Verify        string
	UploadFile    string
	UploadSubmit  string
	NoAccount     string
	HaveAccount   string
	Empty         string
	Statistics    string
	Word          string
	TF            string
	IDF           string

	ResendCode       string
	CodeResent       string
	CollectionName   string
	CreateCollection string
	DeleteCollection string
	DeleteDocument   string
	DocumentID       string
	AddDocument      string
	RemoveDocument   string
	TotalTF          string
	DocumentsCount   string
}

// ResolveTag picks the page language from the lang query parameter, then
// Accept-Language, falling back to English.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return tagEnglish
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, err := language.Parse(value); err == nil {
			return normalize(tag)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			tag, _, _ := matcher.Match(tags...)
			return normalize(tag)
		}
	}
	return tagEnglish
}

// Pages returns localized page copy for tag.
func Pages(tag language.Tag) Copy {
	tag = normalize(tag)
	loc := message.NewPrinter(tag)
	return Copy{
		Lang: tag.String(),
		Titles: map[string]string{
			"register":            withProductSuffix(localize(loc, "title.register", "Create account")),
			"verify-email":        withProductSuffix(localize(loc, "title.verify_email", "Verify email")),
			"login":               withProductSuffix(localize(loc, "title.login", "Sign in")),
			"upload":              withProductSuffix(localize(loc, "title.upload", "Upload")),
			"document-list":       withProductSuffix(localize(loc, "title.documents", "Documents")),
			"document-detail":     withProductSuffix(localize(loc, "title.document", "Document")),
			"document-statistics": withProductSuffix(localize(loc, "title.document_statistics", "Document statistics")),
			"collection-list":     withProductSuffix(localize(loc, "title.collections", "Collections")),
			"collection-detail":   withProductSuffix(localize(loc, "title.collection", "Collection")),
			"profile":             withProductSuffix(localize(loc, "title.profile", "Profile")),
		},
		NavDocuments:   localize(loc, "nav.documents", "Documents"),
		NavCollections: localize(loc, "nav.collections", "Collections"),
		NavUpload:      localize(loc, "nav.upload", "Upload"),
		NavProfile:     localize(loc, "nav.profile", "Profile"),
		NavSignOut:     localize(loc, "nav.sign_out", "Sign out"),
		Email:          localize(loc, "form.email", "Email"),
		Username:       localize(loc, "form.username", "Username"),
		Password:       localize(loc, "form.password", "Password"),
		Password2:      localize(loc, "form.password2", "Repeat password"),
		FirstName:      localize(loc, "form.first_name", "First name"),
		LastName:       localize(loc, "form.last_name", "Last name"),
		Code:           localize(loc, "form.code", "Verification code"),
		SignIn:         localize(loc, "form.sign_in", "Sign in"),
		CreateAccount:  localize(loc, "form.create_account", "Create account"),
		Verify:         localize(loc, "form.verify", "Verify"),
		UploadFile:     localize(loc, "form.upload_file", "Text file"),
		UploadSubmit:   localize(loc, "form.upload_submit", "Analyze"),
		NoAccount:      localize(loc, "login.no_account", "No account yet?"),
		HaveAccount:    localize(loc, "register.have_account", "Already registered?"),
		Empty:          localize(loc, "list.empty", "Nothing here yet."),
		Statistics:     localize(loc, "document.statistics", "Statistics"),
		Word:           localize(loc, "table.word", "Word"),
		TF:             localize(loc, "table.tf", "TF"),
		IDF:            localize(loc, "table.idf", "IDF"),

		ResendCode:       localize(loc, "verify.resend", "Send a new code"),
		CodeResent:       localize(loc, "verify.resent", "A new code is on its way."),
		CollectionName:   localize(loc, "collection.name", "Collection name"),
		CreateCollection: localize(loc, "collection.create", "Create collection"),
		DeleteCollection: localize(loc, "collection.delete", "Delete collection"),
		DeleteDocument:   localize(loc, "document.delete", "Delete document"),
		DocumentID:       localize(loc, "collection.document_id", "Document ID"),
		AddDocument:      localize(loc, "collection.add", "Add document"),
		RemoveDocument:   localize(loc, "collection.remove", "Remove"),
		TotalTF:          localize(loc, "table.total_tf", "Total TF"),
		DocumentsCount:   localize(loc, "collection.doc_count", "Documents"),
	}
}

// Title returns the localized title for a view, or the product name.
func (c Copy) Title(view string) string {
	if title, ok := c.Titles[view]; ok {
		return title
	}
	return AppName
}

func normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	portugueseBase, _ := language.Portuguese.Base()
	if base == portugueseBase {
		return tagPortuguese
	}
	return tagEnglish
}

func withProductSuffix(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return AppName
	}
	return fmt.Sprintf("%s | %s", trimmed, AppName)
}

func localize(loc *message.Printer, key string, fallback string) string {
	if loc != nil {
		value := strings.TrimSpace(loc.Sprintf(key))
		if value != "" && value != key {
			return value
		}
	}
	return fallback
}
