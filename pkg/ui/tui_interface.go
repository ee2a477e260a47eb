package ui

// TUI is an interface for terminal user interfaces
type TUI interface {
	StartCollection(name string, total int)
	StartEmoji(name string)
	CompleteEmoji(name string, size int64)
	FailEmoji(name string, err error)
	CompleteCollection(name string, saved, failed int)
	LogInfo(format string, args ...interface{})
	LogSuccess(format string, args ...interface{})
	LogWarning(format string, args ...interface{})
	LogError(format string, args ...interface{})
	IsPaused() bool
}
