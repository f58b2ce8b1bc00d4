package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/gamelens/gamelens/schema"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateFormat is the day-granularity representation used in reports.
var DateFormat = "2006-01-02"

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. The empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gamelens_runs.db"
	}
	return filepath.Join(homeDir, ".gamelens_runs.db")
}

// Truncate shortens a string to maxLen runes, prefixing with "..."
// so the tail (usually the most specific part) stays visible.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}

// SeverityLabel renders a severity with an optional color.
func SeverityLabel(s schema.Severity, useColors bool) string {
	if !useColors {
		return string(s)
	}
	switch s {
	case schema.HighSeverity:
		return color.RedString(string(s))
	case schema.MediumSeverity:
		return color.YellowString(string(s))
	default:
		return color.GreenString(string(s))
	}
}

// InsightLabel renders an insight polarity with an optional color.
func InsightLabel(t schema.InsightType, useColors bool) string {
	if !useColors {
		return string(t)
	}
	switch t {
	case schema.PositiveInsight:
		return color.GreenString(string(t))
	case schema.WarningInsight:
		return color.RedString(string(t))
	case schema.OpportunityInsight:
		return color.CyanString(string(t))
	default:
		return color.WhiteString(string(t))
	}
}

// QualityLabel buckets a 0-100 quality score into a colored label.
func QualityLabel(score float64, useColors bool) string {
	var label string
	switch {
	case score >= 90:
		label = "good"
	case score >= 70:
		label = "fair"
	default:
		label = "poor"
	}
	if !useColors {
		return label
	}
	switch label {
	case "good":
		return color.GreenString(label)
	case "fair":
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}
