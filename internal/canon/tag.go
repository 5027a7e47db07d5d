package canon

import (
	"encoding"
	"fmt"
)

// Tag tells which family of dangerous operations a canonical entry belongs to.
type Tag int

const (
	TagInvalid Tag = iota

	// TagZeroFill marks constructors producing a value made of zero bytes.
	TagZeroFill

	// TagUninit marks constructors producing a value from uninitialized memory.
	TagUninit

	// TagTransmute marks bit-reinterpretation of one type as another.
	TagTransmute

	// TagNullPtr marks constructors of null raw pointers.
	TagNullPtr
)

var tagValueMap = map[Tag]string{
	TagZeroFill:  "zero-fill",
	TagUninit:    "uninit",
	TagTransmute: "transmute",
	TagNullPtr:   "null-ptr",
}

func (t Tag) String() string {
	v, ok := tagValueMap[t]
	if !ok {
		return fmt.Sprintf("invalid(%d)", t)
	}

	return v
}

var (
	_ encoding.TextUnmarshaler = (*Tag)(nil)
	_ encoding.TextMarshaler   = Tag(0)
)

// UnmarshalText for setting values with configs, CLI, etc.
func (t *Tag) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range tagValueMap {
		if v == text {
			*t = k
			return nil
		}
	}

	return fmt.Errorf("unknown canonical tag %q", text)
}

// MarshalText implements [encoding.TextMarshaler].
func (t Tag) MarshalText() ([]byte, error) {
	v, ok := tagValueMap[t]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Tag(%d)", int(t))
	}

	return []byte(v), nil
}
