// Package paths provides centralized path handling for nixsync. It
// resolves the sync root and derives the repository, backup and system
// tree locations from the loaded configuration.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/errors"
)

// Environment variable names
const (
	// EnvSyncRoot is the primary environment variable for the sync root
	EnvSyncRoot = "NIXSYNC_ROOT"

	// EnvSystemDir overrides the system tree location, mainly for tests
	EnvSystemDir = "NIXSYNC_SYSTEM_DIR"
)

// Paths resolves every directory nixsync touches.
type Paths struct {
	root         string
	repoDir      string
	backupsDir   string
	systemDir    string
	usedFallback bool
}

// ResolveRoot resolves the sync root. A non-empty root wins; otherwise
// it is determined from NIXSYNC_ROOT, the enclosing git repository, or
// the current working directory, in that order. The returned bool
// reports whether the cwd fallback was used, so callers can warn.
func ResolveRoot(root string) (string, bool, error) {
	usedFallback := false
	if root == "" {
		found, fallback, err := findSyncRoot()
		if err != nil {
			return "", false, err
		}
		root = found
		usedFallback = fallback
	} else {
		root = expandHome(root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for sync root")
	}
	return absRoot, usedFallback, nil
}

// New creates a Paths instance. If root is empty it is resolved via
// ResolveRoot.
func New(root string, cfg *config.Config) (*Paths, error) {
	absRoot, usedFallback, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	p := &Paths{root: absRoot, usedFallback: usedFallback}

	p.repoDir = filepath.Join(p.root, cfg.RepoDir)
	p.backupsDir = filepath.Join(p.root, cfg.BackupsDir)

	if systemDir := os.Getenv(EnvSystemDir); systemDir != "" {
		p.systemDir = expandHome(systemDir)
	} else {
		p.systemDir = cfg.SystemDir
	}

	return p, nil
}

// Root returns the sync root directory.
func (p *Paths) Root() string { return p.root }

// RepoDir returns the repository tree directory.
func (p *Paths) RepoDir() string { return p.repoDir }

// BackupsDir returns the parent directory of all snapshots.
func (p *Paths) BackupsDir() string { return p.backupsDir }

// SystemDir returns the live system tree directory.
func (p *Paths) SystemDir() string { return p.systemDir }

// SnapshotDir returns the directory of a named snapshot.
func (p *Paths) SnapshotDir(name string) string {
	return filepath.Join(p.backupsDir, name)
}

// UsedFallback reports whether the sync root fell back to the current
// working directory, so callers can warn.
func (p *Paths) UsedFallback() bool { return p.usedFallback }

// findSyncRoot determines the sync root using the following priority:
// 1. NIXSYNC_ROOT environment variable
// 2. Git repository root (via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findSyncRoot() (string, bool, error) {
	if root := os.Getenv(EnvSyncRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot returns the top level of the enclosing git repository.
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
