// Package feeders provides property sources for the inject runtime's
// conditional registration support, reading data from environment
// variables, YAML files and TOML files.
//
// Each feeder can fill a typed struct (Feed) and can also produce a flat
// string property map (FeedProperties) suitable for inject.MapProperties:
//
//	props, err := feeders.NewYamlFeeder("app.yaml").FeedProperties()
//	plugin := inject.NewMapProperties(props)
package feeders

import (
	"fmt"
	"sort"
	"strconv"
)

// Feeder fills a struct from a configuration source.
type Feeder interface {
	Feed(structure any) error
}

// PropertyFeeder produces a flat map of dotted keys to string values.
type PropertyFeeder interface {
	FeedProperties() (map[string]string, error)
}

// flatten converts a decoded document into dotted string properties:
// nested maps contribute "parent.child" keys, slices contribute indexed
// "key.0", "key.1" keys, scalars are formatted as strings.
func flatten(prefix string, value any, dest map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			flatten(joinKey(prefix, key), nested, dest)
		}
	case map[any]any:
		// yaml.v3 decodes non-string keys into this shape
		keys := make([]string, 0, len(v))
		byKey := make(map[string]any, len(v))
		for key, nested := range v {
			s := fmt.Sprintf("%v", key)
			keys = append(keys, s)
			byKey[s] = nested
		}
		sort.Strings(keys)
		for _, key := range keys {
			flatten(joinKey(prefix, key), byKey[key], dest)
		}
	case []any:
		for i, nested := range v {
			flatten(joinKey(prefix, strconv.Itoa(i)), nested, dest)
		}
	case nil:
		dest[prefix] = ""
	default:
		dest[prefix] = fmt.Sprintf("%v", v)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
