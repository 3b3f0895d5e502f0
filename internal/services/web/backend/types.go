package backend

import "time"

// TokenPair is the login response; only Access is kept by the client.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Credentials authenticate a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration starts the email verification flow.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Verification confirms a registration with the emailed code.
type Verification struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// CodeRequest asks for a new verification code.
type CodeRequest struct {
	Email string `json:"email"`
}

// NewCollection names a collection to create.
type NewCollection struct {
	Name string `json:"name"`
}

// CollectionTerm is one row of a collection's aggregated TF-IDF table.
type CollectionTerm struct {
	Word    string  `json:"word"`
	TotalTF float64 `json:"total_tf"`
	IDF     float64 `json:"idf"`
}

// CollectionStatistics aggregates TF-IDF over a collection's documents.
type CollectionStatistics struct {
	CollectionID   int64            `json:"collection_id"`
	DocumentsCount int              `json:"documents_count"`
	TopWords       []CollectionTerm `json:"top_words"`
}

// User is the signed-in account.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// CollectionRef names a collection a document belongs to.
type CollectionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Document is one uploaded text file.
type Document struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Size        int64           `json:"size"`
	WordCount   int             `json:"word_count"`
	CreatedAt   time.Time       `json:"created_at"`
	Content     string          `json:"content,omitempty"`
	Collections []CollectionRef `json:"collections"`
}

// TermWeight is one row of a TF-IDF table.
type TermWeight struct {
	Word string  `json:"word"`
	TF   float64 `json:"tf"`
	IDF  float64 `json:"idf"`
}

// DocumentStatistics is the TF-IDF table of one document.
type DocumentStatistics struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	WordCount   int             `json:"word_count"`
	FileSize    int64           `json:"file_size"`
	UploadedAt  time.Time       `json:"uploaded_at"`
	Collections []CollectionRef `json:"collections"`
	Terms       []TermWeight    `json:"tfidf_data"`
}

// Collection groups documents.
type Collection struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Documents []Document `json:"documents"`
}

// UploadedFile describes one file accepted by an upload.
type UploadedFile struct {
	FileID    string `json:"file_id"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	WordCount int    `json:"word_count"`
}

// UploadResult is the analysis of an upload batch.
type UploadResult struct {
	Files    []UploadedFile `json:"files"`
	TopWords []TermWeight   `json:"top_words"`
}

// Upload is one file to analyze.
type Upload struct {
	Name    string
	Content []byte
}
