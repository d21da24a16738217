package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath returns the default file path for the catalog file,
// ~/.rooftally/catalog.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rooftally", "catalog.json"), nil
}

// Save writes the catalog to the specified JSON file, creating parent
// directories as needed.
func Save(path string, c Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads the catalog from the specified JSON file. If the file does
// not exist, it returns the built-in default catalog and saves it.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := Default()
			if saveErr := Save(path, c); saveErr != nil {
				return c, saveErr
			}
			return c, nil
		}
		return Catalog{}, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// LoadOrCreate loads the catalog from the default path, creating it with
// built-in entries on first use.
func LoadOrCreate() (Catalog, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", err
	}
	c, err := Load(path)
	return c, path, err
}
