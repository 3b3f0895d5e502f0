// Package routepath stores canonical HTTP paths for the web client.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                   = "/"
	Register               = "/register"
	VerifyEmail            = "/verify-email"
	Login                  = "/login"
	Logout                 = "/logout"
	Health                 = "/up"
	Profile                = "/profile"
	Documents              = "/documents"
	DocumentsPrefix        = "/documents/"
	DocumentPattern        = DocumentsPrefix + ":id"
	DocumentStatsPattern   = DocumentsPrefix + ":id/statistics"
	Collections            = "/collections"
	CollectionsPrefix      = "/collections/"
	CollectionPattern      = CollectionsPrefix + ":id"
	ParamID                = "id"
	documentStatisticsLeaf = "/statistics"
)

// Document returns the document detail path.
func Document(documentID string) string {
	return DocumentsPrefix + escapeSegment(documentID)
}

// DocumentStatistics returns the document statistics path.
func DocumentStatistics(documentID string) string {
	return Document(documentID) + documentStatisticsLeaf
}

// Collection returns the collection detail path.
func Collection(collectionID string) string {
	return CollectionsPrefix + escapeSegment(collectionID)
}

// LoginWithEmail returns the login path prefilled with an email.
func LoginWithEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return Login
	}
	return Login + "?" + url.Values{"email": {email}}.Encode()
}

// VerifyEmailFor returns the verification path prefilled with an email.
func VerifyEmailFor(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return VerifyEmail
	}
	return VerifyEmail + "?" + url.Values{"email": {email}}.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
