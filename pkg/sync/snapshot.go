package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/K-NANOG/OS/pkg/errors"
	"github.com/K-NANOG/OS/pkg/types"
)

// SnapshotTimeFormat names snapshot directories. Lexicographic order of
// the names matches chronological order.
const SnapshotTimeFormat = "2006-01-02_15-04-05"

// Backup copies the whole repository tree into a new timestamp-named
// snapshot directory and returns the snapshot name. If the repository
// tree does not exist it warns and returns an empty name; snapshots are
// never mutated after creation.
func (m *Manager) Backup() (string, error) {
	repoDir := m.paths.RepoDir()
	if !m.exists(repoDir) {
		m.logger.Warn().Str("dir", repoDir).Msg("Repository tree does not exist, nothing to back up")
		return "", nil
	}

	name := m.nextSnapshotName()
	snapshotDir := m.paths.SnapshotDir(name)

	if m.dryRun {
		m.logger.Info().Str("snapshot", name).Msg("Dry run: would create snapshot")
		return name, nil
	}

	if err := m.copyTree(repoDir, snapshotDir); err != nil {
		return "", errors.Wrapf(err, errors.ErrSnapshotCreate, "failed to create snapshot %s", name)
	}

	m.logger.Info().Str("snapshot", name).Msg("Created snapshot")
	return name, nil
}

// nextSnapshotName derives a snapshot name from the current time,
// suffixing a counter when two mutations land in the same second.
func (m *Manager) nextSnapshotName() string {
	base := m.clock.Now().Format(SnapshotTimeFormat)
	name := base
	for i := 2; m.exists(m.paths.SnapshotDir(name)); i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

// ListBackups returns the available snapshots, newest first.
func (m *Manager) ListBackups() ([]types.SnapshotInfo, error) {
	entries, err := m.fs.ReadDir(m.paths.BackupsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var infos []types.SnapshotInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count, size := m.treeStats(m.paths.SnapshotDir(entry.Name()))
		info := types.SnapshotInfo{
			Name:      entry.Name(),
			FileCount: count,
			TotalSize: size,
		}
		if fi, err := entry.Info(); err == nil {
			info.ModTime = fi.ModTime()
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name > infos[j].Name
	})
	return infos, nil
}

// Restore replaces the repository tree with the contents of the named
// snapshot, taking an implicit backup of the current tree first. It
// returns the implicit backup's name. A non-existent snapshot name is a
// fatal error and changes nothing.
func (m *Manager) Restore(name string) (string, error) {
	if err := validateSnapshotName(name); err != nil {
		return "", err
	}

	snapshotDir := m.paths.SnapshotDir(name)
	if !m.exists(snapshotDir) {
		return "", errors.Newf(errors.ErrSnapshotNotFound, "snapshot %q not found in %s", name, m.paths.BackupsDir())
	}

	backupName, err := m.Backup()
	if err != nil {
		return "", err
	}

	if m.dryRun {
		m.logger.Info().Str("snapshot", name).Msg("Dry run: would restore snapshot")
		return backupName, nil
	}

	repoDir := m.paths.RepoDir()
	if err := m.fs.RemoveAll(repoDir); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileCopy, "failed to clear repository tree %s", repoDir)
	}
	if err := m.copyTree(snapshotDir, repoDir); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileCopy, "failed to restore snapshot %s", name)
	}

	m.logger.Info().Str("snapshot", name).Str("backup", backupName).Msg("Restored snapshot")
	return backupName, nil
}

// treeStats returns the number and summed size of regular files under dir.
func (m *Manager) treeStats(dir string) (int, int64) {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return 0, 0
	}

	var count int
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			c, s := m.treeStats(filepath.Join(dir, entry.Name()))
			count += c
			size += s
			continue
		}
		count++
		if fi, err := entry.Info(); err == nil {
			size += fi.Size()
		}
	}
	return count, size
}

// validateSnapshotName rejects names that are empty or look like paths,
// so restore can never read outside the backups directory.
func validateSnapshotName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "snapshot name is empty")
	}
	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "invalid snapshot name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput, "snapshot name %q must not contain path separators", name)
	}
	return nil
}
