// Package result wraps panel outcomes in the envelope shared by every transport.
package result

import (
	"errors"
	"net/http"

	"github.com/castinsight/castdash/schema"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a successful result.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error. The message is the error text.
func Fail(err error) Envelope {
	if err == nil {
		return Envelope{Success: false, Error: "unknown error"}
	}
	return Envelope{Success: false, Error: err.Error()}
}

// StatusCode maps an error to the HTTP status of its envelope.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, schema.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrEmptyApplicationKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
