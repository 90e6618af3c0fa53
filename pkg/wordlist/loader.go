package wordlist

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// yamlList is the intermediate struct for parsing a word-list YAML file.
type yamlList struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Words       []string `yaml:"words"`
}

// yamlListsFile is the top-level structure: a "lists" array.
type yamlListsFile struct {
	Lists []yamlList `yaml:"lists"`
}

// Loader handles loading word lists from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in lists
}

// NewLoader creates a loader with built-in lists from the embedded
// filesystem.
func NewLoader() *Loader {
	return &Loader{fs: builtinFS}
}

// NewLoaderWithFS creates a loader over a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load parses word lists from YAML bytes.
func (l *Loader) Load(data []byte) ([]*List, error) {
	var file yamlListsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Lists) == 0 {
		return nil, fmt.Errorf("no word lists found in YAML")
	}

	lists := make([]*List, len(file.Lists))
	for i, yl := range file.Lists {
		if yl.Name == "" {
			return nil, fmt.Errorf("word list %d has no name", i)
		}
		lists[i] = &List{
			Name:        yl.Name,
			Description: yl.Description,
			Words:       yl.Words,
		}
	}
	return lists, nil
}

// LoadFile parses word lists from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Load(data)
}

// LoadBuiltin loads every built-in word list from the embedded
// filesystem.
func (l *Loader) LoadBuiltin() ([]*List, error) {
	var lists []*List
	err := fs.WalkDir(l.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		loaded, err := l.Load(data)
		if err != nil {
			return fmt.Errorf("in %s: %w", path, err)
		}
		lists = append(lists, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}
