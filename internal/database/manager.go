package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a named database has no backing file.
	ErrNotFound = errors.New("database does not exist")

	// ErrInvalidName is returned for empty names or names containing path separators.
	ErrInvalidName = errors.New("invalid database name")
)

// DefaultExtension is appended to database names to build file paths.
const DefaultExtension = ".db"

// Manager maps user-supplied database names to files in a directory and
// handles their lifecycle. It never holds a connection open.
type Manager struct {
	dir string
	ext string
}

// NewManager returns a Manager rooted at dir. An empty ext uses DefaultExtension.
func NewManager(dir, ext string) *Manager {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Manager{dir: dir, ext: ext}
}

// Dir returns the directory holding the database files.
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the file path for a database name.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name+m.ext)
}

// Exists reports whether a database file exists for name.
func (m *Manager) Exists(name string) bool {
	return fileExists(m.Path(name))
}

// Ensure creates the database file at path with the stocks schema if no file
// exists there. An existing file is left untouched.
func (m *Manager) Ensure(path string) error {
	if fileExists(path) {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := CreateSQLite(path)
	if err != nil {
		return err
	}
	return db.Close()
}

// Create ensures a database exists for name and returns its path.
// Calling Create again for the same name is a no-op.
func (m *Manager) Create(name string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	path := m.Path(name)
	if err := m.Ensure(path); err != nil {
		return "", fmt.Errorf("creating database '%s': %w", name, err)
	}
	return path, nil
}

// Open opens the named database. It fails with ErrNotFound if the file is missing.
func (m *Manager) Open(name string) (*SQLiteStore, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	path := m.Path(name)
	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return OpenSQLite(path)
}

// Delete removes the named database file. It fails with ErrNotFound if the
// file is missing. Open connections to the file are not touched.
func (m *Manager) Delete(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	path := m.Path(name)
	if !fileExists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting database '%s': %w", name, err)
	}
	return nil
}

// List returns the names of all databases in the directory, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing databases: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != m.ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), m.ext))
	}
	sort.Strings(names)
	return names, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
