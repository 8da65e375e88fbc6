// Package config owns the single persisted file grokkit writes,
// <dest>/config.yaml: path references, named skill chains, and optional
// runtime settings. The file is created once and never rewritten by the
// installer; runtime settings are read through Viper so GROK_* environment
// variables can override them.
package config
