package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// TOMLFile keeps values in a TOML document with one table per owner. Every Put
// rewrites the file.
type TOMLFile struct {
	path string

	mu     sync.Mutex
	values map[string]map[string]string
}

// OpenTOMLFile reads path if it exists. A missing file starts empty.
func OpenTOMLFile(path string) (*TOMLFile, error) {
	f := &TOMLFile{path: path, values: make(map[string]map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading prefs file: %w", err)
	}
	if err := toml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parsing prefs file: %w", err)
	}
	return f, nil
}

func (f *TOMLFile) Get(owner, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[owner][key]
	return v, ok, nil
}

func (f *TOMLFile) Put(owner, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[owner] == nil {
		f.values[owner] = make(map[string]string)
	}
	f.values[owner][key] = value
	return f.flush()
}

func (f *TOMLFile) flush() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f.values); err != nil {
		return fmt.Errorf("encoding prefs file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating prefs directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing prefs file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing prefs file: %w", err)
	}
	return nil
}
