package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/wallrun/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding of a settings file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", oerror.ErrUnknownFormat, path)
}

// Load reads the settings file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading settings from %s: %w", path, err)
	}
	return s, nil
}

// Decode parses data over the defaults and validates the result.
func Decode(data []byte, format Format) (*Settings, error) {
	s := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding settings: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("error decoding settings: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", oerror.ErrUnknownFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode serialises s in the given format.
func Encode(s *Settings, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatTOML:
		return toml.Marshal(*s)
	}
	return nil, fmt.Errorf("%w: %q", oerror.ErrUnknownFormat, format)
}

// SaveDefault writes the default settings to path, refusing to overwrite an
// existing file.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file %s already exists", path)
	}
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(Default(), format)
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}
