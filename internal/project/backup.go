package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/rooftally/rooftally/internal/model"
)

// BackupData is the top-level structure for import/export of all
// application data: preferences, the material catalog, document templates,
// and saved quotes.
type BackupData struct {
	Version     string              `json:"version"`
	CreatedAt   string              `json:"created_at"`
	Preferences model.Preferences   `json:"preferences"`
	Catalog     catalog.Catalog     `json:"catalog"`
	Templates   model.TemplateStore `json:"templates"`
	Quotes      []model.Quote       `json:"quotes"`
}

// ExportAllData exports all application data to a single JSON file at the
// specified path.
func ExportAllData(exportPath string, prefs model.Preferences, cat catalog.Catalog, templates model.TemplateStore, quotes []model.Quote) error {
	backup := BackupData{
		Version:     "1.0.0",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Preferences: prefs,
		Catalog:     cat,
		Templates:   templates,
		Quotes:      quotes,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported state.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Preferences.RecentQuotes == nil {
		backup.Preferences.RecentQuotes = []string{}
	}
	return backup, nil
}
