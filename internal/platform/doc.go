// Package platform is the filesystem layer shared by the installer and the
// checker: classifying what sits at a path, creating and removing symlinks,
// copying directory trees, and setting permissions. On Unix it uses native
// symlinks and chmod directly; on Windows symlink creation requires developer
// mode, so callers fall back to managed copies when IsSymlinkSupported is false.
package platform
