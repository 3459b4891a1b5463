// Package naming provides the shared naming convention used across the
// simulation infrastructure.
package naming

import "regexp"

// Named is implemented by anything that has a stable, human readable name
// within the simulation (a component, a port, a connection).
type Named interface {
	Name() string
}

// NamedBase gives an embedder a Name method backed by a fixed string.
type NamedBase struct {
	name string
}

// MakeNamedBase creates a NamedBase, panicking if name is not valid.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)
	return NamedBase{name: name}
}

// Name returns the name of the object.
func (n NamedBase) Name() string {
	return n.name
}

var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\[\]]+$`)

// NameMustBeValid panics if name is empty or contains characters that would
// make it ambiguous once used as a hierarchical component/port name.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name cannot be empty")
	}

	if !validNamePattern.MatchString(name) {
		panic("name " + name + " contains invalid characters")
	}
}
