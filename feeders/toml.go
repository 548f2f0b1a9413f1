package feeders

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TomlFeeder is a feeder that reads TOML files.
type TomlFeeder struct {
	Path string
}

// NewTomlFeeder creates a TomlFeeder reading from the specified file.
func NewTomlFeeder(filePath string) TomlFeeder {
	return TomlFeeder{Path: filePath}
}

// Feed reads the TOML file and decodes it into the target.
func (t TomlFeeder) Feed(target any) error {
	if _, err := toml.DecodeFile(t.Path, target); err != nil {
		return fmt.Errorf("failed to read toml: %w", err)
	}
	return nil
}

// FeedKey reads the TOML file and extracts a specific top-level key into
// the target. A missing key leaves the target untouched.
func (t TomlFeeder) FeedKey(key string, target any) error {
	var allData map[string]any
	if err := t.Feed(&allData); err != nil {
		return err
	}
	value, exists := allData[key]
	if !exists {
		return nil
	}
	valueBytes, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := toml.Unmarshal(valueBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal value to target: %w", err)
	}
	return nil
}

// FeedProperties returns the document flattened to dotted string
// properties.
func (t TomlFeeder) FeedProperties() (map[string]string, error) {
	var allData map[string]any
	if err := t.Feed(&allData); err != nil {
		return nil, err
	}
	props := make(map[string]string)
	flatten("", allData, props)
	return props, nil
}
