package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/mock-interview/internal/ingestion"
)

// openResume checks locally that path is a readable resume, then opens it
// for upload. Unsupported or corrupt files never reach the server.
func openResume(path string) (*os.File, error) {
	_, meta, err := ingestion.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", filepath.Base(path), err)
	}
	log.Printf("[resume] %s: %s, %d characters", meta.Filename, meta.Format, meta.Characters)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	return f, nil
}
