// Package categories backs the expense-categories resource: one JSON
// file with a single "categories" array, created with defaults the
// first time it is asked for.
package categories

import (
	"encoding/json"
	"fmt"
	"os"
)

// Defaults are written to the categories file when it does not exist.
var Defaults = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Business",
	"Other",
}

// Document is the resource payload shape.
type Document struct {
	Categories []string `json:"categories"`
}

// Store serves the categories file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the resource text. When the file exists its content is
// served verbatim; otherwise the default document is written to disk
// and returned.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read categories file: %w", err)
	}

	defaults, err := json.MarshalIndent(Document{Categories: Defaults}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal default categories: %w", err)
	}
	if err := os.WriteFile(s.path, defaults, 0644); err != nil {
		return "", fmt.Errorf("write default categories file: %w", err)
	}
	return string(defaults), nil
}

// List parses the resource into its category names.
func (s *Store) List() ([]string, error) {
	text, err := s.Read()
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	return doc.Categories, nil
}
