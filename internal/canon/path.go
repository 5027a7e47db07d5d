package canon

import (
	"fmt"
	"strings"
)

// Separator joins path segments in the textual form of a [Path].
const Separator = "::"

// Path is an ordered sequence of segment names identifying a declaration.
type Path []string

// ParsePath parses textual path form like "core::mem::zeroed". Go package paths
// are valid segments too: "example.com/mem::Zeroed".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}

	parts := strings.Split(s, Separator)
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("path %q has empty segment at %d", s, i)
		}
	}

	return Path(parts), nil
}

// MustParsePath is [ParsePath] for static tables.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(fmt.Errorf("parse path: %w", err))
	}

	return p
}

func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Identity is an opaque key of a declaration. Two identities are equal
// only when they denote the same declaration, whatever import path or alias
// the call site used.
type Identity struct {
	key string
}

// IdentityOf builds the identity of a declaration living at the given
// canonical path. Only resolvers and tables are expected to call it.
func IdentityOf(p Path) Identity {
	return Identity{key: p.String()}
}

// IsZero reports whether the identity was never set.
func (id Identity) IsZero() bool {
	return id.key == ""
}

// Path returns the canonical path for display purposes. Do not compare
// identities through it.
func (id Identity) Path() Path {
	if id.key == "" {
		return nil
	}

	return Path(strings.Split(id.key, Separator))
}

func (id Identity) String() string {
	return id.key
}
