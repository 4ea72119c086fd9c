// Package theme owns the visitor's light/dark/system choice and resolves it
// against the operating system's color-scheme preference.
package theme

import (
	"errors"
	"fmt"
)

// Preference is the user's explicit appearance choice.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"

	// DefaultPreference applies when nothing usable is stored.
	DefaultPreference = System
)

// StorageKey is the key the preference is persisted under. Bump the version
// suffix instead of migrating when the stored format changes.
const StorageKey = "theme-v1"

var ErrUnknownPreference = errors.New("unknown theme preference")

// Preferences lists every valid preference in toggle order.
var Preferences = [...]Preference{Light, Dark, System}

// ParsePreference maps a stored or submitted tag to a Preference. Tags are
// matched exactly, the same rule the HTTP form binding applies.
func ParsePreference(s string) (Preference, error) {
	p := Preference(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreference, s)
	}
	return p, nil
}

func (p Preference) Valid() bool {
	switch p {
	case Light, Dark, System:
		return true
	default:
		return false
	}
}

func (p Preference) String() string {
	return string(p)
}

// Resolve reports whether the dark appearance applies.
func Resolve(p Preference, osPrefersDark bool) bool {
	return p == Dark || (p == System && osPrefersDark)
}
