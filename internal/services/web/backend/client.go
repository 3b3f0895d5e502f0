// Package backend is the HTTP client for the document analysis API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/docstats/internal/platform/otel"
	"github.com/louisbranch/docstats/internal/platform/timeouts"
	apperrors "github.com/louisbranch/docstats/internal/services/web/platform/errors"
)

const (
	userAgent       = "docstats-web/1.0"
	maxErrorBody    = 64 << 10
	uploadFileField = "files"
)

// Client calls the document analysis API.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	tracer  trace.Tracer
}

// NewClient builds a client for the API rooted at baseURL. A nil httpClient
// uses a client with the default API timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.APIRequest}
	}
	return &Client{baseURL: parsed, client: httpClient, tracer: otel.Tracer("web/backend")}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	if err := c.postJSON(ctx, "login", "/api/user/login/", "", creds, &pair); err != nil {
		return TokenPair{}, err
	}
	if strings.TrimSpace(pair.Access) == "" {
		return TokenPair{}, apperrors.E(apperrors.KindUnavailable, "login response carried no access token")
	}
	return pair, nil
}

// Register starts a registration; the API emails a verification code.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.postJSON(ctx, "register", "/api/user/register/", "", reg, nil)
}

// VerifyEmail completes a registration.
func (c *Client) VerifyEmail(ctx context.Context, v Verification) error {
	return c.postJSON(ctx, "verify_email", "/api/user/verify-email/", "", v, nil)
}

// ResendCode asks the API to email a fresh verification code.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	return c.postJSON(ctx, "resend_code", "/api/user/resend-code/", "", CodeRequest{Email: email}, nil)
}

// Logout ends the server-side session for token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, "logout", "/api/user/logout/", token, nil, nil)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var user User
	err := c.getJSON(ctx, "me", "/api/user/user/me/", token, &user)
	return user, err
}

// ListDocuments returns the user's documents.
func (c *Client) ListDocuments(ctx context.Context, token string) ([]Document, error) {
	var docs []Document
	err := c.getJSON(ctx, "list_documents", "/api/documents/", token, &docs)
	return docs, err
}

// GetDocument returns one document with its content.
func (c *Client) GetDocument(ctx context.Context, token string, id string) (Document, error) {
	var doc Document
	path, err := idPath("/api/documents/", id, "")
	if err != nil {
		return Document{}, err
	}
	err = c.getJSON(ctx, "get_document", path, token, &doc)
	return doc, err
}

// DocumentStatistics returns the TF-IDF table of one document, ordered by
// descending IDF.
func (c *Client) DocumentStatistics(ctx context.Context, token string, id string) (DocumentStatistics, error) {
	var stats DocumentStatistics
	path, err := idPath("/api/documents/", id, "statistics/")
	if err != nil {
		return DocumentStatistics{}, err
	}
	if err := c.getJSON(ctx, "document_statistics", path, token, &stats); err != nil {
		return DocumentStatistics{}, err
	}
	sort.SliceStable(stats.Terms, func(i, j int) bool { return stats.Terms[i].IDF > stats.Terms[j].IDF })
	return stats, nil
}

// ListCollections returns the user's collections.
func (c *Client) ListCollections(ctx context.Context, token string) ([]Collection, error) {
	var cols []Collection
	err := c.getJSON(ctx, "list_collections", "/api/collections/", token, &cols)
	return cols, err
}

// GetCollection returns one collection with its documents.
func (c *Client) GetCollection(ctx context.Context, token string, id string) (Collection, error) {
	var col Collection
	path, err := idPath("/api/collections/", id, "")
	if err != nil {
		return Collection{}, err
	}
	err = c.getJSON(ctx, "get_collection", path, token, &col)
	return col, err
}

// DeleteDocument removes one document.
func (c *Client) DeleteDocument(ctx context.Context, token string, id string) error {
	docID, err := parseID(id)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, "delete_document", http.MethodDelete, "/api/documents/"+docID+"/delete/", token, nil, nil)
}

// CreateCollection creates an empty collection.
func (c *Client) CreateCollection(ctx context.Context, token string, name string) (Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Collection{}, apperrors.E(apperrors.KindInvalidInput, "collection name is required")
	}
	var col Collection
	err := c.postJSON(ctx, "create_collection", "/api/collections/create/", token, NewCollection{Name: name}, &col)
	return col, err
}

// DeleteCollection removes a collection; its documents are kept.
func (c *Client) DeleteCollection(ctx context.Context, token string, id string) error {
	colID, err := parseID(id)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, "delete_collection", http.MethodDelete, "/api/collections/"+colID+"/delete/", token, nil, nil)
}

// AddToCollection adds a document to a collection.
func (c *Client) AddToCollection(ctx context.Context, token string, collectionID string, documentID string) error {
	path, err := membershipPath(collectionID, documentID, "")
	if err != nil {
		return err
	}
	return c.postJSON(ctx, "add_to_collection", path, token, nil, nil)
}

// RemoveFromCollection takes a document out of a collection.
func (c *Client) RemoveFromCollection(ctx context.Context, token string, collectionID string, documentID string) error {
	path, err := membershipPath(collectionID, documentID, "delete/")
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, "remove_from_collection", http.MethodDelete, path, token, nil, nil)
}

// CollectionStatistics returns the aggregated TF-IDF table of a collection,
// ordered by descending IDF.
func (c *Client) CollectionStatistics(ctx context.Context, token string, id string) (CollectionStatistics, error) {
	var stats CollectionStatistics
	path, err := idPath("/api/collections/", id, "statistics/")
	if err != nil {
		return CollectionStatistics{}, err
	}
	if err := c.getJSON(ctx, "collection_statistics", path, token, &stats); err != nil {
		return CollectionStatistics{}, err
	}
	sort.SliceStable(stats.TopWords, func(i, j int) bool { return stats.TopWords[i].IDF > stats.TopWords[j].IDF })
	return stats, nil
}

// Upload sends files for analysis.
func (c *Client) Upload(ctx context.Context, token string, files []Upload) (UploadResult, error) {
	if len(files) == 0 {
		return UploadResult{}, apperrors.E(apperrors.KindInvalidInput, "at least one file is required")
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, file := range files {
		name := strings.TrimSpace(file.Name)
		if name == "" {
			name = "upload.txt"
		}
		part, err := writer.CreateFormFile(uploadFileField, name)
		if err != nil {
			return UploadResult{}, fmt.Errorf("create upload part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return UploadResult{}, fmt.Errorf("write upload part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close upload body: %w", err)
	}
	var result UploadResult
	err := c.do(ctx, "upload", http.MethodPost, "/api/upload/", token, writer.FormDataContentType(), &body, &result)
	return result, err
}

func (c *Client) getJSON(ctx context.Context, op, path, token string, target any) error {
	return c.do(ctx, op, http.MethodGet, path, token, "", nil, target)
}

func (c *Client) postJSON(ctx context.Context, op, path, token string, payload any, target any) error {
	return c.sendJSON(ctx, op, http.MethodPost, path, token, payload, target)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path, token string, payload any, target any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, token, contentType, body, target)
}

func (c *Client) do(ctx context.Context, op, method, path, token, contentType string, body io.Reader, target any) (err error) {
	if c == nil || c.client == nil || c.baseURL == nil {
		return apperrors.E(apperrors.KindUnavailable, "document api is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "backend."+op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.method", method), attribute.String("http.route", path)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperrors.KindOf(err)))
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "document api is unreachable", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "document api returned an unreadable response", fmt.Errorf("decode %s response: %w", op, err))
	}
	return nil
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := errorMessage(data)
	cause := fmt.Errorf("document api returned %s", resp.Status)
	kind := apperrors.KindUnknown
	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		kind = apperrors.KindInvalidInput
	case resp.StatusCode == http.StatusUnauthorized:
		kind = apperrors.KindUnauthorized
		if message == "" {
			message = "session expired, sign in again"
		}
	case resp.StatusCode == http.StatusForbidden:
		kind = apperrors.KindForbidden
	case resp.StatusCode == http.StatusNotFound:
		kind = apperrors.KindNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		kind = apperrors.KindRateLimited
	case resp.StatusCode >= 500:
		kind = apperrors.KindUnavailable
		message = ""
	}
	return apperrors.Wrap(kind, message, cause)
}

// errorMessage extracts a readable message from the API's error bodies:
// {"error": "..."}, {"detail": "..."} or field errors {"field": ["..."]}.
func errorMessage(data []byte) string {
	if len(bytes.TrimSpace(data)) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"error", "detail", "message"} {
		var text string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &text) == nil && text != "" {
			return text
		}
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var parts []string
	for _, key := range keys {
		var list []string
		if json.Unmarshal(payload[key], &list) != nil {
			continue
		}
		for _, item := range list {
			if key == "non_field_errors" {
				parts = append(parts, item)
				continue
			}
			parts = append(parts, key+": "+item)
		}
	}
	return strings.Join(parts, "; ")
}

func idPath(prefix, id, suffix string) (string, error) {
	canonical, err := parseID(id)
	if err != nil {
		return "", err
	}
	return prefix + canonical + "/" + suffix, nil
}

func membershipPath(collectionID, documentID, suffix string) (string, error) {
	colID, err := parseID(collectionID)
	if err != nil {
		return "", err
	}
	docID, err := parseID(documentID)
	if err != nil {
		return "", err
	}
	return "/api/collections/" + colID + "/" + docID + "/" + suffix, nil
}

// parseID canonicalizes a positive integer resource id.
func parseID(id string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return "", apperrors.E(apperrors.KindNotFound, "resource not found")
	}
	return strconv.FormatInt(n, 10), nil
}
