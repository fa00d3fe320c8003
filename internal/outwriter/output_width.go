package outwriter

import (
	"os"

	"github.com/dreamscape/testkit/internal/contract"
	"golang.org/x/term"
)

// defaultTermWidth is conservative for narrow terminals and CI.
const defaultTermWidth = 80

// GetTerminalWidth returns the --width override, the detected stdout width,
// or defaultTermWidth when stdout is not a terminal.
func GetTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth
	}
	return detectedWidth
}

// GetMaxTableNameWidth calculates the maximum width for service names in table output
// based on terminal width and the fixed metric columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	// Status + four metric columns, with borders and padding
	baseWidth := 60

	available := GetTerminalWidth(cfg) - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}
