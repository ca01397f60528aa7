// Package testutil provides isolated test environments for the sync
// engine: a temp-dir sync root, a fake system tree, a fixed clock and a
// recording rebuild runner.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/K-NANOG/OS/pkg/clock"
	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/filesystem"
	"github.com/K-NANOG/OS/pkg/paths"
	"github.com/K-NANOG/OS/pkg/rebuild"
	nixsync "github.com/K-NANOG/OS/pkg/sync"
	"github.com/K-NANOG/OS/pkg/types"
)

// Environment is a complete sync setup rooted in a temp directory.
type Environment struct {
	Root      string
	SystemDir string

	FS      types.FS
	Config  *config.Config
	Paths   *paths.Paths
	Clock   *clock.FakeClock
	Rebuild *rebuild.FakeRunner

	t *testing.T
}

// NewEnvironment creates an isolated environment. The system tree
// exists and is empty; the repository tree is not created so tests can
// exercise the missing-tree paths.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	tempDir := t.TempDir()
	env := &Environment{
		Root:      filepath.Join(tempDir, "os"),
		SystemDir: filepath.Join(tempDir, "etc", "nixos"),
		FS:        filesystem.NewOS(),
		Clock:     clock.NewFakeClock(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)),
		Rebuild:   &rebuild.FakeRunner{},
		t:         t,
	}

	cfg := config.Default()
	cfg.SystemDir = env.SystemDir
	env.Config = cfg

	p, err := paths.New(env.Root, cfg)
	require.NoError(t, err)
	env.Paths = p

	require.NoError(t, os.MkdirAll(env.Root, 0755))
	require.NoError(t, os.MkdirAll(env.SystemDir, 0755))

	return env
}

// Manager builds a sync manager wired to the fake clock and runner.
func (env *Environment) Manager(opts ...nixsync.Option) *nixsync.Manager {
	base := []nixsync.Option{
		nixsync.WithClock(env.Clock),
		nixsync.WithRebuildRunner(env.Rebuild),
	}
	return nixsync.New(env.FS, env.Paths, env.Config, append(base, opts...)...)
}

// WriteSystemFile creates a file in the system tree.
func (env *Environment) WriteSystemFile(name, content string) {
	env.t.Helper()
	writeFile(env.t, filepath.Join(env.SystemDir, name), content)
}

// WriteRepoFile creates a file in the repository tree, creating the
// tree if needed.
func (env *Environment) WriteRepoFile(name, content string) {
	env.t.Helper()
	writeFile(env.t, filepath.Join(env.Paths.RepoDir(), name), content)
}

// ReadRepoFile reads a file from the repository tree.
func (env *Environment) ReadRepoFile(name string) string {
	env.t.Helper()
	data, err := os.ReadFile(filepath.Join(env.Paths.RepoDir(), name))
	require.NoError(env.t, err)
	return string(data)
}

// SnapshotFiles lists the filenames in a snapshot directory.
func (env *Environment) SnapshotFiles(name string) []string {
	env.t.Helper()
	entries, err := os.ReadDir(env.Paths.SnapshotDir(name))
	require.NoError(env.t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
