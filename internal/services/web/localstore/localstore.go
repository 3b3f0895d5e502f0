// Package localstore defines the durable key-value storage the web client
// keeps its browser-side state in.
//
// It plays the part a browser's local storage plays for a single-page app:
// a flat string-to-string map that survives restarts of the client process.
package localstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound reports that a key has no stored value.
var ErrNotFound = errors.New("local storage key not found")

// Storage is a flat string key-value store.
//
// GetItem returns ErrNotFound for absent keys. RemoveItem on an absent key is
// not an error, so removals are idempotent.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// NormalizeKey trims key and rejects empty keys.
func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage key is required")
	}
	return key, nil
}
