package canon

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrDuplicatePath is returned when a canonical path is registered twice.
	ErrDuplicatePath = errors.New("canonical path is already registered")

	// ErrFrozen is returned on registration into a frozen table.
	ErrFrozen = errors.New("canonical table is frozen")
)

// Entry is a single table record.
type Entry struct {
	Path Path
	Tag  Tag
}

// Table maps canonical identities to tags. It is filled once and frozen,
// lookups of a frozen table are safe from any number of goroutines.
type Table struct {
	known  map[Identity]Tag
	frozen bool
}

// NewEmptyTable creates a table with no entries at all.
func NewEmptyTable() *Table {
	return &Table{known: map[Identity]Tag{}}
}

// NewTable creates a table holding predefined entries merged with custom ones.
// A custom entry repeating a predefined path is a registration error.
func NewTable(custom map[string]Tag) (*Table, error) {
	t := &Table{known: maps.Clone(Predefined().known)}

	// Stable registration order keeps error messages reproducible.
	for _, p := range slices.Sorted(maps.Keys(custom)) {
		path, err := ParsePath(p)
		if err != nil {
			return nil, fmt.Errorf("parse custom path: %w", err)
		}
		if err := t.Register(path, custom[p]); err != nil {
			return nil, fmt.Errorf("register custom path: %w", err)
		}
	}

	return t, nil
}

// Register adds a canonical path with its tag.
func (t *Table) Register(path Path, tag Tag) error {
	if t.frozen {
		return fmt.Errorf("register %s: %w", path, ErrFrozen)
	}
	if _, ok := tagValueMap[tag]; !ok {
		return fmt.Errorf("register %s: invalid tag %s", path, tag)
	}

	id := IdentityOf(path)
	if prev, ok := t.known[id]; ok {
		return fmt.Errorf("register %s as %s (was %s): %w", path, tag, prev, ErrDuplicatePath)
	}
	t.known[id] = tag

	return nil
}

// Freeze makes the table read-only. Returns the table itself for chaining.
func (t *Table) Freeze() *Table {
	t.frozen = true
	return t
}

// Frozen reports whether the table accepts no more registrations.
func (t *Table) Frozen() bool {
	return t.frozen
}

// Lookup returns a tag of the given identity. A missing entry is the
// ordinary "not this case" answer.
func (t *Table) Lookup(id Identity) (Tag, bool) {
	tag, ok := t.known[id]
	return tag, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.known)
}

// Entries returns all records ordered by tag, then by path.
func (t *Table) Entries() []Entry {
	res := make([]Entry, 0, len(t.known))
	for id, tag := range t.known {
		res = append(res, Entry{Path: id.Path(), Tag: tag})
	}

	slices.SortFunc(res, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Tag, b.Tag),
			cmp.Compare(a.Path.String(), b.Path.String()),
		)
	})

	return res
}

// Predefined returns the process-wide table of well-known operations.
var Predefined = sync.OnceValue(func() *Table {
	t := NewEmptyTable()
	for _, e := range predefined {
		if err := t.Register(MustParsePath(e.path), e.tag); err != nil {
			panic(fmt.Errorf("build predefined table: %w", err))
		}
	}

	return t.Freeze()
})
