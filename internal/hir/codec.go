package hir

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for dumps of unsupported formats.
var ErrUnknownFormat = errors.New("unknown typed tree format")

// Format of a dump.
type Format uint8

const (
	_ Format = iota
	FormatJSON
	FormatYAML
	FormatMsgPack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgPack:
		return "msgpack"
	default:
		return fmt.Sprintf("format-invalid(%d)", f)
	}
}

// FormatOf picks a format by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgPack, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Decode reads a crate.
func Decode(r io.Reader, f Format) (*Crate, error) {
	var c Crate
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatMsgPack:
		if err := msgpack.NewDecoder(r).Decode(&c); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode %s: %w", f, ErrUnknownFormat)
	}

	return &c, nil
}

// Encode writes a crate.
func Encode(w io.Writer, c *Crate, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close yaml encoder: %w", err)
		}
	case FormatMsgPack:
		if err := msgpack.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("encode %s: %w", f, ErrUnknownFormat)
	}

	return nil
}

// Load reads a crate from the file choosing the format by its extension.
func Load(path string) (*Crate, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open typed tree: %w", err)
	}
	defer file.Close()

	c, err := Decode(bufio.NewReader(file), f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return c, nil
}

// Save writes a crate into the file choosing the format by its extension.
func Save(path string, c *Crate) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create typed tree: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close typed tree: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	if err := Encode(w, c, f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}
