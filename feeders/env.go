package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// EnvFeeder reads environment variables. Struct fields are matched through
// their `env` tag, optionally namespaced by an upper-cased prefix:
//
//	type ServerConfig struct {
//		Port    int  `env:"PORT"`
//		Verbose bool `env:"VERBOSE"`
//	}
//	feeders.NewEnvFeeder("MYAPP").Feed(&cfg) // reads MYAPP_PORT, MYAPP_VERBOSE
type EnvFeeder struct {
	Prefix string
}

// NewEnvFeeder creates an EnvFeeder with the given prefix; pass the empty
// string for unprefixed variables.
func NewEnvFeeder(prefix string) EnvFeeder {
	return EnvFeeder{Prefix: strings.ToUpper(prefix)}
}

// Feed fills the struct's tagged fields from environment variables,
// converting string values to the field types. Variables that are unset
// leave the field untouched.
func (f EnvFeeder) Feed(structure any) error {
	rv := reflect.ValueOf(structure)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidStructure
	}
	return f.fillStruct(rv.Elem())
}

func (f EnvFeeder) fillStruct(rv reflect.Value) error {
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rv.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := f.fillStruct(field); err != nil {
				return fmt.Errorf("error in field %q: %w", fieldType.Name, err)
			}
			continue
		}
		envTag, exists := fieldType.Tag.Lookup("env")
		if !exists {
			continue
		}
		envValue := os.Getenv(f.envName(envTag))
		if envValue == "" {
			continue
		}
		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("error in field %q: %w", fieldType.Name, err)
		}
	}
	return nil
}

func (f EnvFeeder) envName(tag string) string {
	name := strings.ToUpper(tag)
	if f.Prefix != "" {
		name = f.Prefix + "_" + name
	}
	return name
}

// FeedProperties returns the prefixed environment as dotted lower-case
// properties: with prefix MYAPP, MYAPP_DB_URL becomes "db.url".
func (f EnvFeeder) FeedProperties() (map[string]string, error) {
	props := make(map[string]string)
	for _, pair := range os.Environ() {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if f.Prefix != "" {
			trimmed, found := strings.CutPrefix(key, f.Prefix+"_")
			if !found {
				continue
			}
			key = trimmed
		}
		key = strings.ToLower(strings.ReplaceAll(key, "_", "."))
		props[key] = value
	}
	return props, nil
}

// setFieldValue converts and sets a field value.
func setFieldValue(field reflect.Value, strValue string) error {
	convertedValue, err := cast.FromType(strValue, field.Type())
	if err != nil {
		return fmt.Errorf("cannot convert value to type %v: %w", field.Type(), err)
	}
	if !field.CanSet() {
		return ErrFieldNotSettable
	}
	field.Set(reflect.ValueOf(convertedValue))
	return nil
}
