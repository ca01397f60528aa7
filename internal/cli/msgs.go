package cli

// Message constants
const (
	MsgRootShort = "Sync NixOS configuration between /etc/nixos and a versioned repository"
	MsgRootLong  = `nixsync copies a small set of declarative configuration files between
the live system tree (/etc/nixos) and a version-controlled repository
directory, taking a timestamped backup before every mutation of the
repository tree.

The sync root is resolved from --root, the NIXSYNC_ROOT environment
variable, the enclosing git repository, or the current directory, in
that order. Layout under the root: nixos/ (repository tree) and
backups/<timestamp>/ (snapshots).`

	MsgBackupShort = "Snapshot the repository tree"
	MsgBackupLong  = `Create a timestamped backup of the repository tree under backups/.
Snapshots are immutable once written and are only read back by restore.`

	MsgUpdateShort = "Copy the tracked configuration files from the system tree"
	MsgUpdateLong  = `Copy the well-known configuration files (configuration.nix, and
hardware-configuration.nix when present) from the system tree into the
repository tree. The repository tree is backed up first.`

	MsgFullUpdateShort = "Copy all matching configuration files from the system tree"
	MsgFullUpdateLong  = `Like update, but additionally copies every other file in the system
tree that matches the tracked pattern (*.nix by default). Failures on
those incidental files warn and continue.`

	MsgDeployShort = "Copy the tracked files to the system tree and rebuild"
	MsgDeployLong  = `Copy the well-known configuration files from the repository tree into
the system tree, then run the rebuild command (nixos-rebuild switch by
default). Writing /etc/nixos usually requires sudo.`

	MsgFullDeployShort = "Copy the whole repository tree to the system tree and rebuild"
	MsgFullDeployLong  = `Like deploy, but copies every file in the repository tree. Fails fast
if the repository tree is absent.`

	MsgListBackupsShort = "List available backups, newest first"

	MsgRestoreShort = "Restore the repository tree from a named backup"
	MsgRestoreLong  = `Overwrite the repository tree with the contents of the named backup.
The current repository tree is backed up first, so a restore can itself
be undone. Restoring a backup that does not exist changes nothing.`

	MsgStatusShort = "Report which tracked files are in sync"
	MsgStatusLong  = `Byte-compare every tracked file present in the system tree or the
repository tree and report one of: in-sync, differs, missing-in-repo,
missing-in-system. Files marked with * are the well-known names.`

	MsgRestoreExample = `  # See what backups exist
  nixsync list-backups

  # Restore one of them
  nixsync restore 2026-08-26_14-03-05

  # Preview a restore without changing anything
  nixsync restore --dry-run 2026-08-26_14-03-05`

	MsgStatusExample = `  # Full report
  nixsync status

  # Only files that are out of sync
  nixsync status --quiet`
)
