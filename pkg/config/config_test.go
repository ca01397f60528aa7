package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/errors"
	"github.com/K-NANOG/OS/pkg/filesystem"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	fs := filesystem.NewMemory()

	cfg, err := config.Load(fs, "/sync")
	require.NoError(t, err)

	assert.Equal(t, "/etc/nixos", cfg.SystemDir)
	assert.Equal(t, "nixos", cfg.RepoDir)
	assert.Equal(t, "backups", cfg.BackupsDir)
	assert.Equal(t, []string{"configuration.nix"}, cfg.RequiredFiles)
	assert.Equal(t, []string{"hardware-configuration.nix"}, cfg.OptionalFiles)
	assert.Equal(t, "*.nix", cfg.Pattern)
	assert.Equal(t, []string{"nixos-rebuild", "switch"}, cfg.RebuildCommand)
}

func TestLoad_RootFileOverridesDefaults(t *testing.T) {
	fs := filesystem.NewMemory()
	content := `
system_dir = "/mnt/etc/nixos"
rebuild_command = ["nixos-rebuild", "switch", "--upgrade"]
`
	require.NoError(t, fs.WriteFile("/sync/nixsync.toml", []byte(content), 0644))

	cfg, err := config.Load(fs, "/sync")
	require.NoError(t, err)

	assert.Equal(t, "/mnt/etc/nixos", cfg.SystemDir)
	assert.Equal(t, []string{"nixos-rebuild", "switch", "--upgrade"}, cfg.RebuildCommand)
	// Untouched keys keep their defaults.
	assert.Equal(t, "nixos", cfg.RepoDir)
	assert.Equal(t, "*.nix", cfg.Pattern)
}

func TestLoad_ParseErrorIsFatal(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/sync/nixsync.toml", []byte("system_dir = [broken"), 0644))

	_, err := config.Load(fs, "/sync")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestWellKnown_OrderedRequiredThenOptional(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, []string{"configuration.nix", "hardware-configuration.nix"}, cfg.WellKnown())
}
