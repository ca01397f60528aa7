package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/K-NANOG/OS/pkg/types"
)

// Init disables color output when stdout is not a terminal.
func Init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// StateStyle returns the appropriate pterm style for a file state
func StateStyle(state types.FileState) *pterm.Style {
	switch state {
	case types.StateInSync:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StateDiffers:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case types.StateMissingRepo, types.StateMissingSystem:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderStatusReport renders the full status report, one line per file.
func RenderStatusReport(report *types.StatusReport, quiet bool) string {
	var b strings.Builder

	if !quiet {
		b.WriteString(fmt.Sprintf("Comparing %s against %s\n\n", report.SystemDir, report.RepoDir))
	}

	for _, f := range report.Files {
		if quiet && f.State == types.StateInSync {
			continue
		}
		name := f.Name
		if f.WellKnown {
			name += " *"
		}
		b.WriteString(fmt.Sprintf("  %-40s %s\n", name, StateStyle(f.State).Sprint(string(f.State))))
	}

	if len(report.Files) == 0 {
		b.WriteString("  no tracked files found in either tree\n")
	} else if !quiet {
		b.WriteString("\n")
		if report.InSync() {
			b.WriteString(pterm.FgGreen.Sprint("All tracked files are in sync.\n"))
		} else {
			b.WriteString(pterm.FgYellow.Sprint("Trees are out of sync.\n"))
		}
	}

	return b.String()
}

// RenderSnapshotList renders the backup listing, newest first.
func RenderSnapshotList(snapshots []types.SnapshotInfo) string {
	if len(snapshots) == 0 {
		return "No backups found.\n"
	}

	var b strings.Builder
	for _, s := range snapshots {
		b.WriteString(fmt.Sprintf("  %s  %3d files  %8s\n",
			pterm.FgCyan.Sprint(s.Name), s.FileCount, humanSize(s.TotalSize)))
	}
	return b.String()
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
