package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"emojigrab/pkg/errors"
)

// Manager handles file storage for a single collection folder
type Manager struct {
	dir string
}

// NewManager creates a storage manager rooted at the given directory
func NewManager(dir string) (*Manager, error) {
	// Create the collection directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{dir: dir}, nil
}

// SaveEmoji writes emoji data to <name>.<ext> inside the managed
// directory. Existing files are overwritten. The write goes through a
// temporary file and an atomic rename so a crash never leaves a partial
// emoji behind. Returns the final file path.
func (m *Manager) SaveEmoji(name, ext string, data []byte) (string, error) {
	filename := filepath.Join(m.dir, fmt.Sprintf("%s.%s", name, ext))

	// Write to a temporary file first
	tempFile := filename + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return filename, nil
}

// VerifySize re-reads the file at path and checks it holds exactly want
// bytes. A mismatch means the write was cut short or raced with
// something else touching the directory.
func (m *Manager) VerifySize(path string, want int) error {
	info, err := os.Stat(path)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeVerification,
			Message: fmt.Sprintf("failed to stat %s: %v", filepath.Base(path), err),
		}
	}
	if info.Size() != int64(want) {
		return &errors.Error{
			Type:    errors.ErrorTypeVerification,
			Message: fmt.Sprintf("size mismatch for %s: wrote %d bytes, found %d", filepath.Base(path), want, info.Size()),
		}
	}
	return nil
}

// Count returns the number of emoji files in the managed directory
func (m *Manager) Count() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".webp", ".gif":
			count++
		}
	}

	return count, nil
}

// GetDir returns the managed directory path
func (m *Manager) GetDir() string {
	return m.dir
}
