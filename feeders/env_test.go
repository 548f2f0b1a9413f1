package feeders

import (
	"errors"
	"testing"
)

func TestEnvFeeder_Feed(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("VERBOSE", "true")
	t.Setenv("NAME", "worker")

	type Config struct {
		Port    int    `env:"PORT"`
		Verbose bool   `env:"VERBOSE"`
		Name    string `env:"NAME"`
		Ignored string
	}

	var config Config
	if err := NewEnvFeeder("").Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if config.Port != 9090 {
		t.Errorf("Expected Port to be 9090, got %d", config.Port)
	}
	if !config.Verbose {
		t.Errorf("Expected Verbose to be true, got false")
	}
	if config.Name != "worker" {
		t.Errorf("Expected Name to be 'worker', got '%s'", config.Name)
	}
	if config.Ignored != "" {
		t.Errorf("Expected untagged field untouched, got '%s'", config.Ignored)
	}
}

func TestEnvFeeder_FeedWithPrefix(t *testing.T) {
	t.Setenv("MYAPP_PORT", "8443")
	t.Setenv("PORT", "1")

	type Config struct {
		Port int `env:"PORT"`
	}

	var config Config
	if err := NewEnvFeeder("myapp").Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if config.Port != 8443 {
		t.Errorf("Expected Port to be 8443, got %d", config.Port)
	}
}

func TestEnvFeeder_FeedNestedStruct(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/app")

	type Config struct {
		Database struct {
			URL string `env:"DB_URL"`
		}
	}

	var config Config
	if err := NewEnvFeeder("").Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if config.Database.URL != "postgres://localhost/app" {
		t.Errorf("Expected nested URL set, got '%s'", config.Database.URL)
	}
}

func TestEnvFeeder_FeedUnsetLeavesDefault(t *testing.T) {
	type Config struct {
		Timeout int `env:"UNSET_TIMEOUT_FOR_TEST"`
	}

	config := Config{Timeout: 30}
	if err := NewEnvFeeder("").Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if config.Timeout != 30 {
		t.Errorf("Expected default 30 kept, got %d", config.Timeout)
	}
}

func TestEnvFeeder_FeedInvalidStructure(t *testing.T) {
	var notAPointer struct{}
	if err := NewEnvFeeder("").Feed(notAPointer); !errors.Is(err, ErrInvalidStructure) {
		t.Errorf("Expected ErrInvalidStructure, got %v", err)
	}
	value := 42
	if err := NewEnvFeeder("").Feed(&value); !errors.Is(err, ErrInvalidStructure) {
		t.Errorf("Expected ErrInvalidStructure, got %v", err)
	}
}

func TestEnvFeeder_FeedConversionError(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	type Config struct {
		Port int `env:"PORT"`
	}

	var config Config
	if err := NewEnvFeeder("").Feed(&config); err == nil {
		t.Fatal("Expected a conversion error, got nil")
	}
}

func TestEnvFeeder_FeedProperties(t *testing.T) {
	t.Setenv("MYAPP_DB_URL", "postgres://localhost/app")
	t.Setenv("MYAPP_FEATURE_CACHE", "on")
	t.Setenv("OTHER_VALUE", "ignored")

	props, err := NewEnvFeeder("MYAPP").FeedProperties()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if props["db.url"] != "postgres://localhost/app" {
		t.Errorf("Expected db.url property, got %q", props["db.url"])
	}
	if props["feature.cache"] != "on" {
		t.Errorf("Expected feature.cache property, got %q", props["feature.cache"])
	}
	if _, ok := props["other.value"]; ok {
		t.Errorf("Expected unprefixed variables excluded, got %q", props["other.value"])
	}
}
