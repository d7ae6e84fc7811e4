package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/castinsight/castdash/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // MediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgGreen)               // LowColor represents a healthy signal.
	MutedColor    = color.New(color.FgCyan)                // MutedColor represents informational output.
)

// GetColorRiskLabel returns a colored risk label for console output (table).
func GetColorRiskLabel(level schema.RiskLevel) string {
	text := string(level)
	switch level {
	case schema.RiskCritical:
		return CriticalColor.Sprint(text)
	case schema.RiskHigh:
		return HighColor.Sprint(text)
	case schema.RiskMedium:
		return MediumColor.Sprint(text)
	case schema.RiskLow:
		return LowColor.Sprint(text)
	default:
		return MutedColor.Sprint(text)
	}
}

// GetColorGradeLabel returns a colored Good/Fair/Poor label for console output.
func GetColorGradeLabel(grade schema.QualityGrade) string {
	text := string(grade)
	switch grade {
	case schema.GradePoor:
		return CriticalColor.Sprint(text)
	case schema.GradeFair:
		return MediumColor.Sprint(text)
	case schema.GradeGood:
		return LowColor.Sprint(text)
	default:
		return MutedColor.Sprint(text)
	}
}

// GetColorLetterLabel returns a colored A-F health grade for console output.
func GetColorLetterLabel(grade schema.Grade) string {
	text := string(grade)
	switch grade {
	case schema.GradeF:
		return CriticalColor.Sprint(text)
	case schema.GradeD:
		return HighColor.Sprint(text)
	case schema.GradeC:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
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

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the local SQLite datamart file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".castdash.db"
	}
	return filepath.Join(homeDir, ".castdash.db")
}

// TruncateName truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// IsIdentifier reports whether s is a plain SQL identifier (letters, digits, underscores,
// not starting with a digit). Schema names are interpolated into queries, so nothing else passes.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
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
