package vocab

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type cacheFile struct {
	Vocabularies []Entry `yaml:"vocabularies"`
}

// LoadCache reads registry entries previously written by SaveCache
func LoadCache(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary cache: %w", err)
	}

	var cache cacheFile
	if err := yaml.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary cache: %w", err)
	}
	return cache.Vocabularies, nil
}

// SaveCache writes entries to path, creating parent directories. The file is
// written to a temporary name first and renamed into place.
func SaveCache(path string, entries []Entry) error {
	data, err := yaml.Marshal(cacheFile{Vocabularies: entries})
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace vocabulary cache: %w", err)
	}
	return nil
}
