package sync_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-NANOG/OS/pkg/errors"
	nixsync "github.com/K-NANOG/OS/pkg/sync"
	"github.com/K-NANOG/OS/pkg/testutil"
)

func TestPush_CopiesWellKnownFilesAndRebuilds(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteRepoFile("configuration.nix", "{ repo config }")
	env.WriteRepoFile("hardware-configuration.nix", "{ hw }")

	result, err := env.Manager().Push(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"configuration.nix", "hardware-configuration.nix"}, result.Copied)
	assert.True(t, result.Rebuilt)

	data, err := os.ReadFile(filepath.Join(env.SystemDir, "configuration.nix"))
	require.NoError(t, err)
	assert.Equal(t, "{ repo config }", string(data))

	require.Len(t, env.Rebuild.Calls, 1)
	assert.Equal(t, []string{"nixos-rebuild", "switch"}, env.Rebuild.Calls[0])
}

func TestPush_MissingRepoTreeIsFatal(t *testing.T) {
	env := testutil.NewEnvironment(t)

	_, err := env.Manager().Push(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoMissing))
	assert.Empty(t, env.Rebuild.Calls, "rebuild must not run after a failed copy")
}

func TestPush_MissingOptionalFileIsSkipped(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteRepoFile("configuration.nix", "{ }")

	result, err := env.Manager().Push(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"configuration.nix"}, result.Copied)
	assert.Equal(t, []string{"hardware-configuration.nix"}, result.Skipped)
}

func TestPush_FullCopiesWholeTree(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteRepoFile("configuration.nix", "{ }")
	env.WriteRepoFile("modules/audio.nix", "{ audio }")
	env.WriteRepoFile("flake.lock", "lock")

	result, err := env.Manager().Push(context.Background(), true)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"configuration.nix",
		filepath.Join("modules", "audio.nix"),
		"flake.lock",
	}, result.Copied)

	data, err := os.ReadFile(filepath.Join(env.SystemDir, "modules", "audio.nix"))
	require.NoError(t, err)
	assert.Equal(t, "{ audio }", string(data))
}

func TestPush_RebuildFailurePropagates(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteRepoFile("configuration.nix", "{ }")
	env.Rebuild.Err = errors.New(errors.ErrRebuildFailed, "rebuild command exited with code 1")

	_, err := env.Manager().Push(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRebuildFailed))
}

func TestPush_DryRunCopiesNothingAndSkipsRebuild(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteRepoFile("configuration.nix", "{ }")

	result, err := env.Manager(nixsync.WithDryRun(true)).Push(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.Rebuilt)
	assert.Empty(t, env.Rebuild.Calls)

	_, statErr := os.Stat(filepath.Join(env.SystemDir, "configuration.nix"))
	assert.True(t, os.IsNotExist(statErr))
}
