package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManagedMarker is written into every directory tree produced by CopyTree so
// later runs can tell a grokkit-owned copy from user content.
const ManagedMarker = ".grokkit-managed"

// excludedNames are skipped when copying a tree.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// IsManagedCopy reports whether dir is a directory created by CopyTree.
func IsManagedCopy(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManagedMarker))
	return err == nil && info.Mode().IsRegular()
}

// CopyTree copies src to dst recursively and drops the managed marker at the
// top of dst. dst must not exist. A failed copy removes the partial tree so
// nothing unmarked is left behind.
func CopyTree(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("copying %s to %s: destination already exists", src, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := copyDir(src, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	marker := filepath.Join(dst, ManagedMarker)
	if err := os.WriteFile(marker, []byte(src+"\n"), 0644); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("writing %s: %w", marker, err)
	}
	return nil
}

// RemoveManagedCopy deletes dst if, and only if, it carries the managed marker.
func RemoveManagedCopy(dst string) error {
	if !IsManagedCopy(dst) {
		return fmt.Errorf("%s is not a managed copy", dst)
	}
	return os.RemoveAll(dst)
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFileFn(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Nested symlinks and special files are not carried into copies.
	}

	return nil
}

// copyFileFn is swapped in tests to simulate a failing copy.
var copyFileFn = copyFile

// copyFile copies a single file, preserving its permission bits.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}
