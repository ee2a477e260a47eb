package tui_test

import (
	"fmt"
	"time"

	"emojigrab/pkg/ui/tui"
)

func ExampleTUI() {
	// Create a new TUI
	terminal := tui.NewTUI()

	// Start the TUI in a goroutine
	go func() {
		if err := terminal.Start(); err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
	}()

	// Simulate a collection moving through the pipeline
	terminal.StartCollection("My Server", 10)
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("emoji_%d", i)
		terminal.StartEmoji(name)
		time.Sleep(200 * time.Millisecond)

		// Fail every third emoji
		if i%3 == 0 {
			terminal.FailEmoji(name, fmt.Errorf("simulated decode error"))
		} else {
			terminal.CompleteEmoji(name, 24*1024)
		}
	}
	terminal.CompleteCollection("My Server", 7, 3)

	// Add some logs
	terminal.LogInfo("Starting extraction session")
	terminal.LogWarning("Stagnant scroll round detected")
	terminal.LogError("Failed to fetch emoji")
	terminal.LogSuccess("Collection completed successfully")

	// Keep running for demo
	time.Sleep(10 * time.Second)
	terminal.Stop()
}
