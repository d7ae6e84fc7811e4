package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationKey(t *testing.T) {
	tests := []struct {
		raw     string
		isName  bool
		id      int
		name    string
		display string
	}{
		{"42", false, 42, "", "42"},
		{" 7 ", false, 7, "", "7"},
		{"-3", false, -3, "", "-3"},
		{"Billing", true, 0, "Billing", "Billing"},
		{"42abc", true, 0, "42abc", "42abc"},
		{"4.2", true, 0, "4.2", "4.2"},
		{"App 2", true, 0, "App 2", "App 2"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			k, err := ParseApplicationKey(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.isName, k.IsName())
			if tt.isName {
				name, ok := k.Name()
				assert.True(t, ok)
				assert.Equal(t, tt.name, name)
				_, isID := k.ID()
				assert.False(t, isID)
			} else {
				id, ok := k.ID()
				assert.True(t, ok)
				assert.Equal(t, tt.id, id)
			}
			assert.Equal(t, tt.display, k.String())
		})
	}
}

func TestParseApplicationKeyEmpty(t *testing.T) {
	_, err := ParseApplicationKey("   ")
	assert.ErrorIs(t, err, ErrEmptyApplicationKey)
}

func TestApplicationKeyConstructors(t *testing.T) {
	assert.Equal(t, "12", ApplicationByID(12).String())
	assert.Equal(t, "12", ApplicationByName("12").String())
	assert.True(t, ApplicationByName("12").IsName())
	assert.False(t, ApplicationByID(12).IsName())
}
