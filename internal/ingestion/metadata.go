package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume.
type Metadata struct {
	Filename   string `json:"filename"`
	Format     Format `json:"format"`
	Characters int    `json:"characters"`
	Hash       string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Timestamp  string `json:"timestamp"` // RFC3339 format
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, format Format, text string) *Metadata {
	return &Metadata{
		Filename:   filepath.Base(filename),
		Format:     format,
		Characters: utf8.RuneCountInString(text),
		Hash:       computeHash(text),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
