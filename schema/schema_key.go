package schema

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyApplicationKey is returned when a key has nothing to resolve.
var ErrEmptyApplicationKey = errors.New("application key is empty")

// ApplicationKey addresses one application either by numeric id or by name.
// Build it with ApplicationByID, ApplicationByName or ParseApplicationKey.
type ApplicationKey struct {
	id     int
	name   string
	byName bool
}

// ApplicationByID returns a key that matches the application id.
func ApplicationByID(id int) ApplicationKey {
	return ApplicationKey{id: id}
}

// ApplicationByName returns a key that matches the application name.
func ApplicationByName(name string) ApplicationKey {
	return ApplicationKey{name: name, byName: true}
}

// ParseApplicationKey resolves raw input once. Input that is entirely a
// base-10 integer becomes an id, anything else is a name.
func ParseApplicationKey(raw string) (ApplicationKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ApplicationKey{}, ErrEmptyApplicationKey
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return ApplicationByID(id), nil
	}
	return ApplicationByName(raw), nil
}

// IsName reports whether the key matches by name.
func (k ApplicationKey) IsName() bool { return k.byName }

// ID returns the application id and whether the key is an id.
func (k ApplicationKey) ID() (int, bool) { return k.id, !k.byName }

// Name returns the application name and whether the key is a name.
func (k ApplicationKey) Name() (string, bool) { return k.name, k.byName }

// String is the display form used when no application name is known.
func (k ApplicationKey) String() string {
	if k.byName {
		return k.name
	}
	return strconv.Itoa(k.id)
}
