// Package web owns the browser-facing docstats client.
//
// Every request is a navigation: the path is resolved against the static
// route table, the guard decides whether it may proceed given the session
// token held by the credential store, and the bound view is rendered or the
// browser is redirected to the sign-in page.
package web
