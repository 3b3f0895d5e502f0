// Package navigation holds the web client's static route table and the guard
// that runs before every navigation commits.
//
// The table maps path patterns to view identifiers. The guard only knows one
// rule: a route whose metadata requires authentication is reachable while a
// session token is present, and redirects to the login page otherwise.
package navigation
