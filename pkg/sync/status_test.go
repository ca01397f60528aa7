package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K-NANOG/OS/pkg/testutil"
	"github.com/K-NANOG/OS/pkg/types"
)

func statusOf(t *testing.T, report *types.StatusReport, name string) types.FileState {
	t.Helper()
	for _, f := range report.Files {
		if f.Name == name {
			return f.State
		}
	}
	t.Fatalf("file %s not in report", name)
	return ""
}

func TestStatus_ReportsAllStates(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteSystemFile("configuration.nix", "{ same }")
	env.WriteRepoFile("configuration.nix", "{ same }")
	env.WriteSystemFile("hardware-configuration.nix", "{ old }")
	env.WriteRepoFile("hardware-configuration.nix", "{ new }")
	env.WriteSystemFile("networking.nix", "{ }")
	env.WriteRepoFile("services.nix", "{ }")

	report, err := env.Manager().Status()
	require.NoError(t, err)

	assert.Equal(t, types.StateInSync, statusOf(t, report, "configuration.nix"))
	assert.Equal(t, types.StateDiffers, statusOf(t, report, "hardware-configuration.nix"))
	assert.Equal(t, types.StateMissingRepo, statusOf(t, report, "networking.nix"))
	assert.Equal(t, types.StateMissingSystem, statusOf(t, report, "services.nix"))
	assert.False(t, report.InSync())
}

func TestStatus_InSyncIffByteEqual(t *testing.T) {
	env := testutil.NewEnvironment(t)

	tests := []struct {
		name   string
		system string
		repo   string
		want   types.FileState
	}{
		{name: "identical", system: "{ x = 1; }", repo: "{ x = 1; }", want: types.StateInSync},
		{name: "single_byte", system: "{ x = 1; }", repo: "{ x = 2; }", want: types.StateDiffers},
		{name: "trailing_newline", system: "{ }\n", repo: "{ }", want: types.StateDiffers},
		{name: "both_empty", system: "", repo: "", want: types.StateInSync},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.WriteSystemFile("configuration.nix", tt.system)
			env.WriteRepoFile("configuration.nix", tt.repo)

			report, err := env.Manager().Status()
			require.NoError(t, err)
			assert.Equal(t, tt.want, statusOf(t, report, "configuration.nix"))
		})
	}
}

func TestStatus_WellKnownComesFirstAndIsMarked(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteSystemFile("aaa.nix", "{ }")
	env.WriteSystemFile("configuration.nix", "{ }")

	report, err := env.Manager().Status()
	require.NoError(t, err)
	require.Len(t, report.Files, 2)

	assert.Equal(t, "configuration.nix", report.Files[0].Name)
	assert.True(t, report.Files[0].WellKnown)
	assert.Equal(t, "aaa.nix", report.Files[1].Name)
	assert.False(t, report.Files[1].WellKnown)
}

func TestStatus_EmptyTrees(t *testing.T) {
	env := testutil.NewEnvironment(t)

	report, err := env.Manager().Status()
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.True(t, report.InSync())
}

func TestStatus_IgnoresNonMatchingFiles(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteSystemFile("README.md", "docs")
	env.WriteRepoFile("nixsync.log", "log")

	report, err := env.Manager().Status()
	require.NoError(t, err)
	assert.Empty(t, report.Files)
}
