package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/grok-skills/grokkit/internal/branding"
)

const fileType = "yaml"

// Built-in runtime defaults, applied when neither the file nor the
// environment sets a value.
const (
	DefaultMinBytes int64 = 100
	DefaultMaxBytes int64 = 100 * 1024
	LinkModeSymlink       = "symlink"
	LinkModeCopy          = "copy"
)

var v = viper.New()

// Init points Viper at the config file and the GROK_* environment.
// A missing file is not an error.
func Init(path string) {
	v = viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.ReadInConfig()
}

// Get returns a config value by dotted key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// Set writes a key-value pair and saves the config file. The value is
// decoded as a YAML scalar first so "4" is stored as a number and "true" as
// a bool.
func Set(key, value string) error {
	var typed interface{}
	if err := yaml.Unmarshal([]byte(value), &typed); err != nil || typed == nil {
		typed = value
	}
	v.Set(key, typed)
	if err := v.WriteConfigAs(v.ConfigFileUsed()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// RuntimeSettings resolves the effective runtime settings.
func RuntimeSettings() Settings {
	s := Settings{
		Concurrency: v.GetInt("settings.concurrency"),
		MinBytes:    v.GetInt64("settings.min_bytes"),
		MaxBytes:    v.GetInt64("settings.max_bytes"),
		LinkMode:    v.GetString("settings.link_mode"),
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.NumCPU()
	}
	if s.MinBytes <= 0 {
		s.MinBytes = DefaultMinBytes
	}
	if s.MaxBytes <= 0 {
		s.MaxBytes = DefaultMaxBytes
	}
	if s.LinkMode != LinkModeCopy {
		s.LinkMode = LinkModeSymlink
	}
	return s
}
