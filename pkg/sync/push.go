package sync

import (
	"context"
	"path/filepath"

	"github.com/K-NANOG/OS/pkg/errors"
)

// PushResult describes what a push copied into the system tree.
type PushResult struct {
	// Copied are the filenames copied into the system tree.
	Copied []string
	// Skipped are optional filenames absent from the repository tree.
	Skipped []string
	// Rebuilt is true when the rebuild command actually ran.
	Rebuilt bool
}

// Push copies files from the repository tree into the system tree and
// then invokes the rebuild command. Writing the system tree requires
// elevated privileges; a permission denial is fatal. When full is set
// the entire repository tree is copied, otherwise only the well-known
// files. Fails fast if the repository tree is absent.
func (m *Manager) Push(ctx context.Context, full bool) (*PushResult, error) {
	repoDir := m.paths.RepoDir()
	systemDir := m.paths.SystemDir()

	if !m.exists(repoDir) {
		return nil, errors.Newf(errors.ErrRepoMissing, "repository tree %s does not exist", repoDir)
	}

	result := &PushResult{}

	if full {
		files, err := m.listTree(repoDir, "")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to list repository tree %s", repoDir)
		}
		for _, rel := range files {
			if err := m.pushFile(filepath.Join(repoDir, rel), filepath.Join(systemDir, rel)); err != nil {
				return nil, err
			}
			result.Copied = append(result.Copied, rel)
		}
	} else {
		for _, name := range m.cfg.RequiredFiles {
			src := filepath.Join(repoDir, name)
			if !m.exists(src) {
				return nil, errors.Newf(errors.ErrFileRead, "required file %s not found in %s", name, repoDir)
			}
			if err := m.pushFile(src, filepath.Join(systemDir, name)); err != nil {
				return nil, err
			}
			result.Copied = append(result.Copied, name)
		}
		for _, name := range m.cfg.OptionalFiles {
			src := filepath.Join(repoDir, name)
			if !m.exists(src) {
				m.logger.Warn().Str("file", name).Msg("Optional file missing from repository tree, skipping")
				result.Skipped = append(result.Skipped, name)
				continue
			}
			if err := m.pushFile(src, filepath.Join(systemDir, name)); err != nil {
				return nil, err
			}
			result.Copied = append(result.Copied, name)
		}
	}

	if m.dryRun {
		m.logger.Info().Strs("argv", m.cfg.RebuildCommand).Msg("Dry run: would run rebuild command")
		return result, nil
	}

	if err := m.rebuild.Run(ctx, m.cfg.RebuildCommand); err != nil {
		return nil, err
	}
	result.Rebuilt = true

	m.logger.Info().Bool("full", full).Int("copied", len(result.Copied)).Msg("Push finished")
	return result, nil
}

// pushFile copies one file into the system tree unless in dry-run mode.
// A permission denial is fatal because push requires elevated privileges.
func (m *Manager) pushFile(src, dst string) error {
	if m.dryRun {
		m.logger.Info().Str("src", src).Str("dst", dst).Msg("Dry run: would copy")
		return nil
	}
	if err := m.copyFile(src, dst); err != nil {
		if isPermission(err) {
			return errors.Wrapf(err, errors.ErrPermission, "permission denied writing %s (try running with sudo)", dst)
		}
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", src)
	}
	return nil
}

// listTree returns the paths of all regular files under dir, relative
// to dir, in directory order.
func (m *Manager) listTree(dir, prefix string) ([]string, error) {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		rel := filepath.Join(prefix, entry.Name())
		if entry.IsDir() {
			sub, err := m.listTree(filepath.Join(dir, entry.Name()), rel)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		files = append(files, rel)
	}
	return files, nil
}
