package web

import (
	"context"

	"github.com/louisbranch/docstats/internal/services/web/backend"
)

// Credentials is the session token holder the navigator reads and mutates.
type Credentials interface {
	Token() (string, bool)
	IsAuthenticated() bool
	SetToken(ctx context.Context, value string) error
	ClearToken(ctx context.Context) error
	ClearPending() bool
}

// DocumentAPI is the subset of the document analysis API the views use.
type DocumentAPI interface {
	Login(ctx context.Context, creds backend.Credentials) (backend.TokenPair, error)
	Register(ctx context.Context, reg backend.Registration) error
	VerifyEmail(ctx context.Context, v backend.Verification) error
	ResendCode(ctx context.Context, email string) error
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (backend.User, error)
	ListDocuments(ctx context.Context, token string) ([]backend.Document, error)
	GetDocument(ctx context.Context, token string, id string) (backend.Document, error)
	DocumentStatistics(ctx context.Context, token string, id string) (backend.DocumentStatistics, error)
	DeleteDocument(ctx context.Context, token string, id string) error
	ListCollections(ctx context.Context, token string) ([]backend.Collection, error)
	GetCollection(ctx context.Context, token string, id string) (backend.Collection, error)
	CreateCollection(ctx context.Context, token string, name string) (backend.Collection, error)
	DeleteCollection(ctx context.Context, token string, id string) error
	AddToCollection(ctx context.Context, token string, collectionID string, documentID string) error
	RemoveFromCollection(ctx context.Context, token string, collectionID string, documentID string) error
	CollectionStatistics(ctx context.Context, token string, id string) (backend.CollectionStatistics, error)
	Upload(ctx context.Context, token string, files []backend.Upload) (backend.UploadResult, error)
}
