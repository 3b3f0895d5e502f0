// Package credential owns the web client's session token.
//
// A Store is the single in-memory source of truth for the token and keeps it
// in step with persistent local storage. It is built once at startup, seeded
// from storage, and handed to the navigation pipeline and to any view that
// needs to know whether the user is signed in.
package credential
