package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Document is cleaned input text with provenance
type Document struct {
	Source     string `json:"source,omitempty"`
	Text       string `json:"text"`
	Hash       string `json:"hash"` // SHA256 of the cleaned text
	Format     string `json:"format"`
	IngestedAt string `json:"ingested_at"` // RFC3339
}

// IngestError reports input that could not be turned into text
type IngestError struct {
	Path    string
	Message string
	Cause   error
}

func (e *IngestError) Error() string {
	prefix := "ingest"
	if e.Path != "" {
		prefix = "ingest " + e.Path
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}

// FromString cleans raw content, converting HTML to text when detected
func FromString(content, source string) (*Document, error) {
	format := "text"
	text := CleanText(content)
	if LooksLikeHTML(content) {
		extracted, err := ExtractHTMLText(content)
		if err != nil {
			return nil, err
		}
		text = extracted
		format = "html"
	}
	return &Document{
		Source:     source,
		Text:       text,
		Hash:       ContentHash(text),
		Format:     format,
		IngestedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// FromFile reads a text or HTML file and cleans it
func FromFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &IngestError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, &IngestError{Path: path, Message: "failed to read file", Cause: err}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		text, err := ExtractHTMLText(string(content))
		if err != nil {
			return nil, &IngestError{Path: path, Message: "failed to extract HTML text", Cause: err}
		}
		return &Document{
			Source:     path,
			Text:       text,
			Hash:       ContentHash(text),
			Format:     "html",
			IngestedAt: time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
	return FromString(string(content), path)
}

// ContentHash computes the SHA256 hex digest of the concatenated parts.
// Parts are length-prefixed so ("ab","c") and ("a","bc") hash differently.
func ContentHash(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = fmt.Fprintf(h, "%d:", len(p))
		_, _ = h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
