package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dreamscape/testkit/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // meets every threshold
	GoodColor      = color.New(color.FgBlue)              // close to the lines threshold
	FairColor      = color.New(color.FgYellow)            // standard caution
	PoorColor      = color.New(color.FgRed, color.Bold)   // standard danger
	MutedColor     = color.New(color.FgHiBlack)           // unknown, missing and error entries
)

// statusEmoji maps coverage statuses to their Markdown glyph.
var statusEmoji = map[schema.CoverageStatus]string{
	schema.ExcellentStatus: "🟢",
	schema.GoodStatus:      "🔵",
	schema.FairStatus:      "🟡",
	schema.PoorStatus:      "🔴",
	schema.UnknownStatus:   "⚪",
}

// StatusEmoji returns the glyph used for a coverage status in Markdown output.
func StatusEmoji(status schema.CoverageStatus) string {
	if e, ok := statusEmoji[status]; ok {
		return e
	}
	return "⚪"
}

// SuiteEmoji returns the glyph used for a suite status in Markdown output.
func SuiteEmoji(status schema.SuiteStatus) string {
	switch status {
	case schema.HasTests:
		return "✅"
	case schema.BasicTests:
		return "⚠️"
	default:
		return "❌"
	}
}

// PassGlyph renders a threshold comparison result.
func PassGlyph(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// GetColorLabel returns a colored status label for console output (table).
func GetColorLabel(status schema.CoverageStatus, useColors bool) string {
	text := string(status)
	if !useColors {
		return text
	}

	switch status {
	case schema.ExcellentStatus:
		return ExcellentColor.Sprint(text)
	case schema.GoodStatus:
		return GoodColor.Sprint(text)
	case schema.FairStatus:
		return FairColor.Sprint(text)
	case schema.PoorStatus:
		return PoorColor.Sprint(text)
	default:
		return MutedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// EnsureDir creates dir and its parents when missing. It is a no-op when dir exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping empty items.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err == nil {
		_, _ = fmt.Fprintf(os.Stderr, "⚠️ %s\n", msg)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "⚠️ %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".testkit_history.db"
	}
	return filepath.Join(homeDir, ".testkit_history.db")
}

// ParseBoolString parses a string into a boolean value.
// Accepts: "yes", "true", "1" for true; "no", "false", "0" for false.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
