package config

import "fmt"

// ColorMode controls ANSI colors of the pretty output.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

var colorModeValueMap = map[ColorMode]string{
	ColorAuto: "auto",
	ColorOn:   "on",
	ColorOff:  "off",
}

func (m ColorMode) String() string {
	v, ok := colorModeValueMap[m]
	if !ok {
		return fmt.Sprintf("color-invalid(%d)", m)
	}

	return v
}

func (m *ColorMode) UnmarshalText(b []byte) error {
	text := string(b)
	for k, v := range colorModeValueMap {
		if v == text {
			*m = k
			return nil
		}
	}

	return fmt.Errorf("unknown color mode %q", text)
}

func (m ColorMode) MarshalText() ([]byte, error) {
	v, ok := colorModeValueMap[m]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid ColorMode(%d)", m)
	}

	return []byte(v), nil
}

// Enabled decides on colors given whether the output is a terminal.
func (m ColorMode) Enabled(terminal bool) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return terminal
	}
}
