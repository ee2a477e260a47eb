// Package ui provides terminal UI components for the emoji grabber
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                   // Print ASCII logo
ui.PrintInfo("Collection", "My Server")          // Cyan label with yellow value
ui.PrintSuccess("Extraction completed!")         // Green success message
ui.PrintError("Failed to save emoji", err)       // Red error message
ui.PrintWarning("Scroll round was stagnant")     // Yellow warning message
ui.PrintHighlight("[INITIATING EXTRACTION]")     // Magenta highlight message

// Quiet mode suppresses everything decorative (errors still print)
ui.SetQuietMode(true)

// Per-collection progress bar
progress := ui.NewCollectionProgress("My Server", 42)
progress.EmojiSaved("party_parrot", 24576)       // Advance after a save
progress.EmojiFailed("broken_emoji")             // Advance after a skip
progress.Finish()                                // Prints the summary line

// Notifications (cross-platform)
notifier := ui.NewNotifier()
notifier.SendNotification("Extraction Complete", "All collections saved")
notifier.SendError("Error", "Browser session was lost")
notifier.SendSuccess("Success", "120 emojis extracted")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("Collection"), ui.Yellow("My Server"))
fmt.Println(ui.Green("✓ Saved"))
fmt.Println(ui.Red("✗ Skipped"))
*/
