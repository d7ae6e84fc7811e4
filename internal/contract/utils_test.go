package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/castinsight/castdash/schema"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorLabels(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, level := range schema.AllRiskLevels {
		assert.Equal(t, string(level), GetColorRiskLabel(level))
	}
	for _, grade := range []schema.QualityGrade{schema.GradeGood, schema.GradeFair, schema.GradePoor, schema.GradeNA} {
		assert.Equal(t, string(grade), GetColorGradeLabel(grade))
	}
	for _, grade := range []schema.Grade{schema.GradeA, schema.GradeB, schema.GradeC, schema.GradeD, schema.GradeF} {
		assert.Equal(t, string(grade), GetColorLetterLabel(grade))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "missing", "out.json"))
		assert.Error(t, err)
	})
}

func TestGetDBFilePath(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetDBFilePath(), ".castdash.db"))
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"shorter than width", "Billing", 10, "Billing"},
		{"exact width", "Billing", 7, "Billing"},
		{"truncated", "Claims Processing", 10, "Claims ..."},
		{"width too small", "Claims Processing", 3, "Claims Processing"},
		{"multibyte runes", "Zürich Ledger", 8, "Züric..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"datamart", "demo_central", "_x", "A1"}
	invalid := []string{"", "1abc", "data-mart", "a b", "x;drop", "\"quoted\""}
	for _, s := range valid {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"", false, true},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Run("json filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("warn", LogFormatJSON, &buf)
		logger.Info().Msg("hidden")
		logger.Warn().Str("panel", "summaries").Msg("fallback")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"panel":"summaries"`)
		assert.Contains(t, out, `"level":"warn"`)
	})

	t.Run("console is human readable", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("info", LogFormatConsole, &buf)
		logger.Info().Msg("listening")
		assert.Contains(t, buf.String(), "listening")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger("loud", LogFormatJSON, &buf)
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
