package installer

import (
	"fmt"

	"github.com/grok-skills/grokkit/internal/platform"
)

// ConfigurationError means a required source tree is missing or unreadable.
// It aborts the run.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConflictError means the destination holds real content that grokkit did
// not create. The content is left untouched.
type ConflictError struct {
	Path string
	Kind platform.Kind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s exists and is a %s, not a symlink; move it aside to install here", e.Path, e.Kind)
}

// FilesystemError wraps an I/O failure on a specific path.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }
