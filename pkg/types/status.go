package types

import "time"

// FileState is the result of byte-comparing one tracked file across the
// system and repository trees.
type FileState string

const (
	StateInSync        FileState = "in-sync"
	StateDiffers       FileState = "differs"
	StateMissingRepo   FileState = "missing-in-repo"
	StateMissingSystem FileState = "missing-in-system"
)

// FileStatus describes one tracked file in a status report.
type FileStatus struct {
	// Name is the filename relative to either tree.
	Name string
	// State is the comparison result.
	State FileState
	// WellKnown is true for the explicitly tracked filenames, false for
	// files picked up by the incidental pattern.
	WellKnown bool
}

// StatusReport is the full output of the status operation.
type StatusReport struct {
	SystemDir string
	RepoDir   string
	Files     []FileStatus
}

// InSync reports whether every file in the report is in sync.
func (r *StatusReport) InSync() bool {
	for _, f := range r.Files {
		if f.State != StateInSync {
			return false
		}
	}
	return true
}

// SnapshotInfo describes one backup snapshot for listing.
type SnapshotInfo struct {
	// Name is the timestamp-derived directory name.
	Name string
	// FileCount is the number of regular files in the snapshot.
	FileCount int
	// TotalSize is the summed size of those files in bytes.
	TotalSize int64
	// ModTime is the snapshot directory's modification time.
	ModTime time.Time
}
