package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/grok-skills/grokkit/internal/config"
	"github.com/grok-skills/grokkit/internal/grokhome"
	"github.com/grok-skills/grokkit/internal/platform"
)

// Status is the record emitted for every install operation.
type Status struct {
	Label   string
	Success bool
	Detail  string
}

// Options configures an Installer.
type Options struct {
	RepoRoot string
	DestRoot string
	Home     string // directory holding the shell rc files
	Kind     Kind
	Out      io.Writer
	Log      *zap.Logger
}

// Installer carries the explicit state of one install run.
type Installer struct {
	repoRoot string
	destRoot string
	home     string
	kind     Kind
	out      io.Writer
	log      *zap.Logger
}

// New returns an Installer. Nil Out and Log discard output.
func New(opts Options) *Installer {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Kind == "" {
		opts.Kind = KindSymlink
	}
	return &Installer{
		repoRoot: opts.RepoRoot,
		destRoot: opts.DestRoot,
		home:     opts.Home,
		kind:     opts.Kind,
		out:      opts.Out,
		log:      opts.Log,
	}
}

// Initialize ensures destRoot and its skills/, agents/, and templates/
// subdirectories exist.
func (i *Installer) Initialize(destRoot string) error {
	parent := filepath.Dir(destRoot)
	if _, err := os.Stat(destRoot); errors.Is(err, fs.ErrNotExist) {
		if _, perr := os.Stat(parent); perr == nil && !platform.IsWritableDir(parent) {
			return &FilesystemError{Op: "initialize", Path: parent, Err: fs.ErrPermission}
		}
	}

	if err := i.ensureDir(destRoot); err != nil {
		return err
	}
	for _, sub := range grokhome.Subdirs {
		if err := i.ensureDir(filepath.Join(destRoot, sub)); err != nil {
			return err
		}
	}
	return nil
}

// LinkDirectory symlinks dest to source. An existing symlink at dest is
// replaced; any other existing entry is a ConflictError and is not touched.
func (i *Installer) LinkDirectory(source, dest, label string) (Status, error) {
	absSource, err := i.checkSource(source)
	if err != nil {
		return i.report(label, err)
	}

	replaced, err := i.clearDestination(dest, false)
	if err != nil {
		return i.report(label, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), grokhome.DirPermNormal); err != nil {
		return i.report(label, &FilesystemError{Op: "mkdir", Path: filepath.Dir(dest), Err: err})
	}
	if err := platform.CreateSymlink(absSource, dest); err != nil {
		return i.report(label, &FilesystemError{Op: "symlink", Path: dest, Err: err})
	}

	verb := "linked"
	if replaced {
		verb = "relinked"
	}
	i.log.Debug("symlink created", zap.String("label", label), zap.String("dest", dest), zap.String("source", absSource))
	return i.ok(label, fmt.Sprintf("%s %s -> %s", verb, dest, absSource))
}

// CopyDirectory copies source to dest as a managed copy. A previous managed
// copy or symlink is replaced; unmanaged content is a ConflictError.
func (i *Installer) CopyDirectory(source, dest, label string) (Status, error) {
	absSource, err := i.checkSource(source)
	if err != nil {
		return i.report(label, err)
	}

	replaced, err := i.clearDestination(dest, true)
	if err != nil {
		return i.report(label, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), grokhome.DirPermNormal); err != nil {
		return i.report(label, &FilesystemError{Op: "mkdir", Path: filepath.Dir(dest), Err: err})
	}
	if err := platform.CopyTree(absSource, dest); err != nil {
		return i.report(label, &FilesystemError{Op: "copy", Path: dest, Err: err})
	}

	verb := "copied"
	if replaced {
		verb = "recopied"
	}
	return i.ok(label, fmt.Sprintf("%s %s -> %s", verb, absSource, dest))
}

// Install materializes one target according to its kind.
func (i *Installer) Install(t Target) (Status, error) {
	if t.Kind == KindCopy {
		return i.CopyDirectory(t.Source, t.Dest, t.Label)
	}
	return i.LinkDirectory(t.Source, t.Dest, t.Label)
}

// WriteDefaultConfig writes the default config unless one already exists.
// configPath defaults to <destRoot>/config.yaml. An existing file is never
// rewritten; its version is only checked for compatibility.
func (i *Installer) WriteDefaultConfig(destRoot, configPath string) (bool, error) {
	if configPath == "" {
		configPath = grokhome.ConfigPath(destRoot)
	}

	wrote, err := config.WriteIfAbsent(configPath, config.Default(i.repoRoot, destRoot))
	if err != nil {
		fmt.Fprintf(i.out, "  [FAIL] %s: %v\n", configPath, err)
		return false, &FilesystemError{Op: "write config", Path: configPath, Err: err}
	}
	if wrote {
		fmt.Fprintf(i.out, "  [ OK ] Created %s\n", configPath)
		return true, nil
	}

	fmt.Fprintf(i.out, "  [SKIP] %s already exists\n", configPath)
	if existing, err := config.Load(configPath); err != nil {
		i.log.Warn("existing config is unreadable", zap.String("path", configPath), zap.Error(err))
	} else if err := config.CheckVersion(existing.Version); err != nil {
		i.log.Warn("existing config version", zap.String("path", configPath), zap.Error(err))
	}
	return false, nil
}

// checkSource validates that source is an existing directory and returns its
// absolute path.
func (i *Installer) checkSource(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", &ConfigurationError{Path: source, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ConfigurationError{Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &ConfigurationError{Path: abs, Err: errors.New("not a directory")}
	}
	return abs, nil
}

// clearDestination removes whatever grokkit previously put at dest and
// reports whether something was removed. allowManaged lets a managed copy be
// replaced.
func (i *Installer) clearDestination(dest string, allowManaged bool) (bool, error) {
	kind, err := platform.Inspect(dest)
	if err != nil {
		return false, &FilesystemError{Op: "inspect", Path: dest, Err: err}
	}

	switch kind {
	case platform.KindMissing:
		return false, nil
	case platform.KindSymlink:
		if err := platform.RemoveSymlink(dest); err != nil {
			return false, &FilesystemError{Op: "remove symlink", Path: dest, Err: err}
		}
		return true, nil
	case platform.KindDir:
		if allowManaged && platform.IsManagedCopy(dest) {
			if err := platform.RemoveManagedCopy(dest); err != nil {
				return false, &FilesystemError{Op: "remove copy", Path: dest, Err: err}
			}
			return true, nil
		}
	}
	return false, &ConflictError{Path: dest, Kind: kind}
}

func (i *Installer) ensureDir(path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(i.out, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return &FilesystemError{Op: "initialize", Path: path, Err: errors.New("exists but is not a directory")}
	}

	if err := os.MkdirAll(path, grokhome.DirPermNormal); err != nil {
		return &FilesystemError{Op: "mkdir", Path: path, Err: err}
	}
	// MkdirAll is subject to umask.
	if err := platform.Chmod(path, grokhome.DirPermNormal); err != nil {
		return &FilesystemError{Op: "chmod", Path: path, Err: err}
	}
	fmt.Fprintf(i.out, "  [ OK ] Created %s\n", path)
	return nil
}

func (i *Installer) ok(label, detail string) (Status, error) {
	fmt.Fprintf(i.out, "  [ OK ] %s: %s\n", label, detail)
	return Status{Label: label, Success: true, Detail: detail}, nil
}

func (i *Installer) report(label string, err error) (Status, error) {
	fmt.Fprintf(i.out, "  [FAIL] %s: %v\n", label, err)
	i.log.Debug("install target failed", zap.String("label", label), zap.Error(err))
	return Status{Label: label, Success: false, Detail: err.Error()}, err
}
