// Package storage provides file management for downloaded emojis.
//
// The storage package handles:
//   - Creating and managing collection output directories
//   - Saving emoji files with atomic write operations
//   - Verifying written files against the expected byte count
//
// The Manager type is the primary interface for storage operations. Each
// Manager is rooted at a single collection folder and writes files
// through a temporary file plus rename so interrupted runs never leave
// truncated emojis behind. Saves always overwrite, which makes re-runs
// idempotent.
//
// Usage:
//
//	manager, err := storage.NewManager("emojis/my-server")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, err := manager.SaveEmoji("party_parrot", "webp", data)
//	if err != nil {
//	    log.Printf("Failed to save emoji: %v", err)
//	}
//	if err := manager.VerifySize(path, len(data)); err != nil {
//	    log.Printf("Verification warning: %v", err)
//	}
package storage
