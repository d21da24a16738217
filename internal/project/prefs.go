// Package project persists quotes, preferences, and document templates as
// JSON files under the user's config directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rooftally/rooftally/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.rooftally/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rooftally")
}

// DefaultPreferencesPath returns the default path for the preferences file.
func DefaultPreferencesPath() string {
	return filepath.Join(DefaultConfigDir(), "preferences.json")
}

// SavePreferences persists preferences to the given path as JSON.
// It creates any missing parent directories automatically.
func SavePreferences(path string, prefs model.Preferences) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPreferences reads preferences from the given path.
// If the file does not exist, it returns DefaultPreferences with no error.
func LoadPreferences(path string) (model.Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultPreferences(), nil
		}
		return model.Preferences{}, err
	}
	var prefs model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return model.Preferences{}, err
	}
	if prefs.RecentQuotes == nil {
		prefs.RecentQuotes = []string{}
	}
	if prefs.MaxRecentQuotes <= 0 {
		prefs.MaxRecentQuotes = 10
	}
	return prefs, nil
}
