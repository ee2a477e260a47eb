package ui

import (
	"fmt"
	"sync/atomic"
)

// ASCII logo for the application
const ASCIILogo = `
    ╔════════════════════════════════════════════════════════════════════════════╗
    ║ ███████╗███╗   ███╗ ██████╗      ██╗██╗     ██████╗ ██████╗  █████╗ ██████╗  ║
    ║ ██╔════╝████╗ ████║██╔═══██╗     ██║██║    ██╔════╝ ██╔══██╗██╔══██╗██╔══██╗ ║
    ║ █████╗  ██╔████╔██║██║   ██║     ██║██║    ██║  ███╗██████╔╝███████║██████╔╝ ║
    ║ ██╔══╝  ██║╚██╔╝██║██║   ██║██   ██║██║    ██║   ██║██╔══██╗██╔══██║██╔══██╗ ║
    ║ ███████╗██║ ╚═╝ ██║╚██████╔╝╚█████╔╝██║    ╚██████╔╝██║  ██║██║  ██║██████╔╝ ║
    ║ ╚══════╝╚═╝     ╚═╝ ╚═════╝  ╚════╝ ╚═╝     ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝  ║
    ║           NETRUNNER EDITION - EMOJI EXTRACTION UTILITY v1.0                  ║
    ╚════════════════════════════════════════════════════════════════════════════╝
`

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// quiet suppresses all decorative console output when set
var quiet atomic.Bool

// noColor strips ANSI codes from all output when set
var noColor atomic.Bool

// SetQuietMode toggles suppression of decorative output. Errors are
// still printed.
func SetQuietMode(on bool) {
	quiet.Store(on)
}

// IsQuietMode reports whether decorative output is suppressed
func IsQuietMode() bool {
	return quiet.Load()
}

// SetColorEnabled toggles ANSI color codes in terminal output
func SetColorEnabled(on bool) {
	noColor.Store(!on)
}

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		if noColor.Load() {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	if IsQuietMode() {
		return
	}
	fmt.Print(Cyan(ASCIILogo))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(Red(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(Green(msg))
}

// PrintInfo prints an info message in cyan
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		fmt.Println(Yellow(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(Magenta(msg))
}
