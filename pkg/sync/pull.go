package sync

import (
	"path/filepath"

	"github.com/K-NANOG/OS/pkg/errors"
)

// PullResult describes what a pull copied from the system tree.
type PullResult struct {
	// Backup is the name of the implicit snapshot, empty when the
	// repository tree did not exist yet.
	Backup string
	// Copied are the filenames copied into the repository tree.
	Copied []string
	// Skipped are optional filenames that were absent from the system tree.
	Skipped []string
}

// Pull copies tracked files from the system tree into the repository
// tree, after an implicit backup. A missing optional file warns and is
// skipped; any failure on a required file is fatal, with permission
// denials reported as such. When full is set, every other file matching
// the incidental pattern is copied too, and failures there only warn.
func (m *Manager) Pull(full bool) (*PullResult, error) {
	systemDir := m.paths.SystemDir()
	repoDir := m.paths.RepoDir()

	if !m.exists(systemDir) {
		return nil, errors.Newf(errors.ErrSystemMissing, "system tree %s does not exist", systemDir)
	}

	backup, err := m.Backup()
	if err != nil {
		return nil, err
	}
	result := &PullResult{Backup: backup}

	for _, name := range m.cfg.RequiredFiles {
		src := filepath.Join(systemDir, name)
		if !m.exists(src) {
			return nil, errors.Newf(errors.ErrFileRead, "required file %s not found in %s", name, systemDir)
		}
		if err := m.pullFile(src, filepath.Join(repoDir, name)); err != nil {
			if isPermission(err) {
				return nil, errors.Wrapf(err, errors.ErrPermission, "permission denied reading %s", src)
			}
			return nil, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", name)
		}
		result.Copied = append(result.Copied, name)
	}

	for _, name := range m.cfg.OptionalFiles {
		src := filepath.Join(systemDir, name)
		if !m.exists(src) {
			m.logger.Warn().Str("file", name).Msg("Optional file missing from system tree, skipping")
			result.Skipped = append(result.Skipped, name)
			continue
		}
		if err := m.pullFile(src, filepath.Join(repoDir, name)); err != nil {
			if isPermission(err) {
				return nil, errors.Wrapf(err, errors.ErrPermission, "permission denied reading %s", src)
			}
			m.logger.Warn().Err(err).Str("file", name).Msg("Failed to copy optional file, continuing")
			result.Skipped = append(result.Skipped, name)
			continue
		}
		result.Copied = append(result.Copied, name)
	}

	if full {
		incidental, err := m.pullIncidental(result)
		if err != nil {
			return nil, err
		}
		result.Copied = append(result.Copied, incidental...)
	}

	m.logger.Info().
		Bool("full", full).
		Int("copied", len(result.Copied)).
		Int("skipped", len(result.Skipped)).
		Msg("Pull finished")
	return result, nil
}

// pullIncidental copies files matching the pattern that are not already
// handled by the well-known lists. Failures here are advisory.
func (m *Manager) pullIncidental(result *PullResult) ([]string, error) {
	systemDir := m.paths.SystemDir()
	repoDir := m.paths.RepoDir()

	handled := make(map[string]bool)
	for _, name := range m.cfg.WellKnown() {
		handled[name] = true
	}

	entries, err := m.fs.ReadDir(systemDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to list system tree %s", systemDir)
	}

	var copied []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || handled[name] || !m.matchesPattern(name) {
			continue
		}
		if err := m.pullFile(filepath.Join(systemDir, name), filepath.Join(repoDir, name)); err != nil {
			m.logger.Warn().Err(err).Str("file", name).Msg("Failed to copy file, continuing")
			result.Skipped = append(result.Skipped, name)
			continue
		}
		copied = append(copied, name)
	}
	return copied, nil
}

// pullFile copies one file unless the manager is in dry-run mode.
func (m *Manager) pullFile(src, dst string) error {
	if m.dryRun {
		m.logger.Info().Str("src", src).Str("dst", dst).Msg("Dry run: would copy")
		return nil
	}
	return m.copyFile(src, dst)
}
