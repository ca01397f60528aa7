package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/paths"
)

func TestResolveRoot_ExplicitWins(t *testing.T) {
	t.Setenv(paths.EnvSyncRoot, "/elsewhere")

	root, usedFallback, err := paths.ResolveRoot("/explicit")
	require.NoError(t, err)
	assert.Equal(t, "/explicit", root)
	assert.False(t, usedFallback)
}

func TestResolveRoot_EnvVariable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvSyncRoot, dir)

	root, usedFallback, err := paths.ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.False(t, usedFallback)
}

func TestNew_DerivesTreeLocations(t *testing.T) {
	cfg := config.Default()

	p, err := paths.New("/sync", cfg)
	require.NoError(t, err)

	assert.Equal(t, "/sync", p.Root())
	assert.Equal(t, filepath.Join("/sync", "nixos"), p.RepoDir())
	assert.Equal(t, filepath.Join("/sync", "backups"), p.BackupsDir())
	assert.Equal(t, "/etc/nixos", p.SystemDir())
	assert.Equal(t, filepath.Join("/sync", "backups", "x"), p.SnapshotDir("x"))
}

func TestNew_SystemDirEnvOverride(t *testing.T) {
	t.Setenv(paths.EnvSystemDir, "/tmp/fake-nixos")

	p, err := paths.New("/sync", config.Default())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fake-nixos", p.SystemDir())
}

func TestNew_CustomDirNames(t *testing.T) {
	cfg := config.Default()
	cfg.RepoDir = "etc"
	cfg.BackupsDir = "snapshots"

	p, err := paths.New("/sync", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/sync", "etc"), p.RepoDir())
	assert.Equal(t, filepath.Join("/sync", "snapshots"), p.BackupsDir())
}
