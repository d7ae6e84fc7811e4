package schema

import "errors"

// ErrNotFound is the root of every "nothing matched" error in castdash.
// Boundaries map it with errors.Is.
var ErrNotFound = errors.New("not found")
