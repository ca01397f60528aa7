package style_test

import (
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/K-NANOG/OS/pkg/style"
	"github.com/K-NANOG/OS/pkg/types"
)

func init() {
	// Output assertions are about content, not escape codes.
	pterm.DisableColor()
}

func sampleReport() *types.StatusReport {
	return &types.StatusReport{
		SystemDir: "/etc/nixos",
		RepoDir:   "/sync/nixos",
		Files: []types.FileStatus{
			{Name: "configuration.nix", State: types.StateInSync, WellKnown: true},
			{Name: "hardware-configuration.nix", State: types.StateDiffers, WellKnown: true},
			{Name: "networking.nix", State: types.StateMissingRepo},
		},
	}
}

func TestRenderStatusReport(t *testing.T) {
	out := style.RenderStatusReport(sampleReport(), false)

	assert.Contains(t, out, "configuration.nix *")
	assert.Contains(t, out, "in-sync")
	assert.Contains(t, out, "differs")
	assert.Contains(t, out, "missing-in-repo")
	assert.Contains(t, out, "out of sync")
}

func TestRenderStatusReport_QuietHidesInSync(t *testing.T) {
	out := style.RenderStatusReport(sampleReport(), true)

	assert.NotContains(t, out, "in-sync")
	assert.Contains(t, out, "hardware-configuration.nix")
	assert.Contains(t, out, "networking.nix")
}

func TestRenderStatusReport_AllInSync(t *testing.T) {
	report := &types.StatusReport{
		Files: []types.FileStatus{{Name: "configuration.nix", State: types.StateInSync, WellKnown: true}},
	}
	out := style.RenderStatusReport(report, false)
	assert.Contains(t, out, "All tracked files are in sync.")
}

func TestRenderStatusReport_Empty(t *testing.T) {
	out := style.RenderStatusReport(&types.StatusReport{}, false)
	assert.Contains(t, out, "no tracked files found")
}

func TestRenderSnapshotList(t *testing.T) {
	out := style.RenderSnapshotList([]types.SnapshotInfo{
		{Name: "2026-08-26_13-00-00", FileCount: 3, TotalSize: 2048, ModTime: time.Now()},
		{Name: "2026-08-26_12-00-00", FileCount: 1, TotalSize: 10},
	})

	assert.Contains(t, out, "2026-08-26_13-00-00")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "10 B")
}

func TestRenderSnapshotList_Empty(t *testing.T) {
	assert.Equal(t, "No backups found.\n", style.RenderSnapshotList(nil))
}
