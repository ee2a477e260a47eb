package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"emojigrab/pkg/errors"
)

func TestManager(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()

	// Create manager
	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.GetDir() != tempDir {
		t.Errorf("Expected dir %q, got %q", tempDir, manager.GetDir())
	}

	// Test initial state
	count, err := manager.Count()
	if err != nil {
		t.Fatalf("Failed to count files: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected initial count to be 0, got %d", count)
	}

	// Test SaveEmoji
	testData := []byte("fake webp data")
	path, err := manager.SaveEmoji("party_parrot", "webp", testData)
	if err != nil {
		t.Fatalf("Failed to save emoji: %v", err)
	}

	expectedPath := filepath.Join(tempDir, "party_parrot.webp")
	if path != expectedPath {
		t.Errorf("Expected path %q, got %q", expectedPath, path)
	}

	// Verify file content
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match saved data")
	}

	// No temp file should be left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be gone after save")
	}

	// Test count after save
	count, err = manager.Count()
	if err != nil {
		t.Fatalf("Failed to count files: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count to be 1, got %d", count)
	}
}

func TestSaveEmojiOverwrites(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// First save
	if _, err := manager.SaveEmoji("blob", "gif", []byte("first version")); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	// Second save with different content must overwrite, not error
	newData := []byte("second version, longer payload")
	path, err := manager.SaveEmoji("blob", "gif", newData)
	if err != nil {
		t.Fatalf("Overwriting save failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, newData) {
		t.Error("Expected second save to replace file content")
	}

	// Still one file, not two
	count, err := manager.Count()
	if err != nil {
		t.Fatalf("Failed to count files: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count to be 1 after overwrite, got %d", count)
	}
}

func TestNewManagerCreatesNestedDirectory(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "emojis", "my-server")

	manager, err := NewManager(nested)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	info, err := os.Stat(manager.GetDir())
	if err != nil {
		t.Fatalf("Expected nested directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}

func TestVerifySize(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	data := []byte("twelve bytes")
	path, err := manager.SaveEmoji("check", "webp", data)
	if err != nil {
		t.Fatalf("Failed to save emoji: %v", err)
	}

	// Matching size passes
	if err := manager.VerifySize(path, len(data)); err != nil {
		t.Errorf("Expected verification to pass, got %v", err)
	}

	// Wrong size is a verification error
	err = manager.VerifySize(path, len(data)+5)
	if err == nil {
		t.Fatal("Expected verification to fail for wrong size")
	}
	if errors.TypeOf(err) != errors.ErrorTypeVerification {
		t.Errorf("Expected verification error type, got %v", errors.TypeOf(err))
	}

	// Missing file is a verification error too
	err = manager.VerifySize(filepath.Join(tempDir, "missing.webp"), 10)
	if err == nil {
		t.Fatal("Expected verification to fail for missing file")
	}
	if errors.TypeOf(err) != errors.ErrorTypeVerification {
		t.Errorf("Expected verification error type, got %v", errors.TypeOf(err))
	}
}

func TestCountIgnoresUnrelatedFiles(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := manager.SaveEmoji("one", "webp", []byte("a")); err != nil {
		t.Fatalf("Failed to save emoji: %v", err)
	}
	if _, err := manager.SaveEmoji("two", "gif", []byte("b")); err != nil {
		t.Fatalf("Failed to save emoji: %v", err)
	}

	// Unrelated file and subdirectory should not be counted
	if err := os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create unrelated file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tempDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	count, err := manager.Count()
	if err != nil {
		t.Fatalf("Failed to count files: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count to be 2, got %d", count)
	}
}
