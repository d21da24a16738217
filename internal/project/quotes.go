package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rooftally/rooftally/internal/model"
)

// DefaultQuotesDir returns the directory quotes are stored in.
func DefaultQuotesDir() string {
	return filepath.Join(DefaultConfigDir(), "quotes")
}

// QuotePath returns the file path for a quote ID in the given directory.
func QuotePath(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

// SaveQuote writes a quote to dir as <id>.json, touching its UpdatedAt
// timestamp. The directory is created if missing.
func SaveQuote(dir string, quote *model.Quote) error {
	if quote.ID == "" {
		return fmt.Errorf("quote has no ID")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	quote.Touch()
	data, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(QuotePath(dir, quote.ID), data, 0644)
}

// LoadQuote reads a single quote by ID.
func LoadQuote(dir, id string) (model.Quote, error) {
	data, err := os.ReadFile(QuotePath(dir, id))
	if err != nil {
		return model.Quote{}, err
	}
	var quote model.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return model.Quote{}, err
	}
	if quote.ID == "" {
		return model.Quote{}, fmt.Errorf("quote file %s has no ID", id)
	}
	return quote, nil
}

// DeleteQuote removes a stored quote. Deleting a quote that does not exist
// is not an error.
func DeleteQuote(dir, id string) error {
	err := os.Remove(QuotePath(dir, id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ListQuotes loads every quote in dir, newest first by UpdatedAt.
// Unreadable files are skipped.
func ListQuotes(dir string) ([]model.Quote, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Quote{}, nil
		}
		return nil, err
	}

	var quotes []model.Quote
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		quote, err := LoadQuote(dir, id)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].UpdatedAt > quotes[j].UpdatedAt
	})
	return quotes, nil
}
