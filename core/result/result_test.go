package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/castinsight/castdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	env := OK(map[string]int{"total_applications": 3})
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"total_applications":3}}`, string(raw))
}

func TestFail(t *testing.T) {
	env := Fail(errors.New("connection refused"))
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"connection refused"}`, string(raw))

	assert.Equal(t, "unknown error", Fail(nil).Error)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", schema.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("application Billing: %w", schema.ErrNotFound), http.StatusNotFound},
		{"empty key", schema.ErrEmptyApplicationKey, http.StatusBadRequest},
		{"upstream", errors.New("query datamart: timeout"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}
