// Package backup encodes and decodes the {settings, theme, history} snapshot
// used for configuration import and export.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/settings"
	"github.com/ramanasai/pomo/internal/theme"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrMissingField is returned when a snapshot lacks settings, theme or history.
	ErrMissingField = errors.New("snapshot is missing a field")
	// ErrParse is returned when the file cannot be decoded.
	ErrParse = errors.New("snapshot could not be parsed")
)

// Snapshot is the combined export of everything a user configures.
type Snapshot struct {
	Settings settings.Settings `json:"settings" yaml:"settings"`
	Theme    theme.Name        `json:"theme" yaml:"theme"`
	History  []history.Entry   `json:"history" yaml:"history"`
}

// FormatFor guesses the format from a file name; anything not .yaml/.yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode writes s in format f.
func Encode(s Snapshot, f Format) ([]byte, error) {
	if s.History == nil {
		s.History = []history.Entry{}
	}
	switch f {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON:
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// Decode parses a snapshot. Presence of all three fields is required; the
// settings block falls back per field like a stored record, while an unknown
// theme or a malformed history rejects the whole file.
func Decode(raw []byte, f Format) (Snapshot, error) {
	if f == FormatYAML {
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		raw = b
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for _, key := range []string{"settings", "theme", "history"} {
		if v, ok := fields[key]; !ok || string(v) == "null" {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	var s Snapshot
	s.Settings, _ = settings.Decode(fields["settings"])

	name, err := theme.Decode(fields["theme"])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: theme: %v", ErrParse, err)
	}
	s.Theme = name

	entries, err := history.Decode(fields["history"])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: history: %v", ErrParse, err)
	}
	s.History = entries
	return s, nil
}
