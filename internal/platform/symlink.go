package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Kind classifies what currently occupies a filesystem path.
type Kind int

const (
	KindMissing Kind = iota
	KindSymlink
	KindFile
	KindDir
)

// String returns the lowercase name used in status messages.
func (k Kind) String() string {
	switch k {
	case KindSymlink:
		return "symlink"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "missing"
	}
}

// Inspect reports what is at path without following a final symlink.
// A dangling symlink is still KindSymlink.
func Inspect(path string) (Kind, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindMissing, nil
		}
		return KindMissing, err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return KindSymlink, nil
	case info.IsDir():
		return KindDir, nil
	default:
		return KindFile, nil
	}
}

// CreateSymlink creates a symbolic link at link pointing to target.
// The parent directory of link must already exist.
func CreateSymlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating symlink (enable developer mode or use copy mode): %w", err)
		}
		return err
	}
	return nil
}

// RemoveSymlink removes the symlink at path. It refuses to touch anything
// that is not a symlink so real user content can never be deleted through it.
func RemoveSymlink(path string) error {
	kind, err := Inspect(path)
	if err != nil {
		return err
	}
	switch kind {
	case KindMissing:
		return nil
	case KindSymlink:
		return os.Remove(path)
	default:
		return fmt.Errorf("%s is a %s, not a symlink", path, kind)
	}
}

// ReadSymlinkTarget returns the target of a symlink as stored on disk.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// ResolveSymlinkTarget returns the absolute target of a symlink, resolving a
// relative target against the link's parent directory.
func ResolveSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// IsSymlinkSupported returns true if the current platform can create native
// symlinks. On Windows this attempts a throwaway symlink in the temp dir.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".grokkit-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}
