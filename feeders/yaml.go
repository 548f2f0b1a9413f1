package feeders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YamlFeeder is a feeder that reads YAML files.
type YamlFeeder struct {
	Path string
}

// NewYamlFeeder creates a YamlFeeder reading from the specified file.
func NewYamlFeeder(filePath string) YamlFeeder {
	return YamlFeeder{Path: filePath}
}

// Feed reads the YAML file and unmarshals it into the target.
func (y YamlFeeder) Feed(target any) error {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return fmt.Errorf("failed to read YAML: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

// FeedKey reads the YAML file and extracts a specific top-level key into
// the target. A missing key leaves the target untouched.
func (y YamlFeeder) FeedKey(key string, target any) error {
	var allData map[string]any
	if err := y.Feed(&allData); err != nil {
		return err
	}
	value, exists := allData[key]
	if !exists {
		return nil
	}
	// remarshal to handle type conversions into the target shape
	valueBytes, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := yaml.Unmarshal(valueBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal value to target: %w", err)
	}
	return nil
}

// FeedProperties returns the document flattened to dotted string
// properties.
func (y YamlFeeder) FeedProperties() (map[string]string, error) {
	var allData map[string]any
	if err := y.Feed(&allData); err != nil {
		return nil, err
	}
	props := make(map[string]string)
	flatten("", allData, props)
	return props, nil
}
