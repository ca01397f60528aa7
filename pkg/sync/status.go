package sync

import (
	"bytes"
	"path/filepath"
	"sort"

	"github.com/K-NANOG/OS/pkg/errors"
	"github.com/K-NANOG/OS/pkg/types"
)

// Status byte-compares every tracked file present in either tree and
// reports its state. Status never mutates anything; it exits cleanly
// even when files differ.
func (m *Manager) Status() (*types.StatusReport, error) {
	systemDir := m.paths.SystemDir()
	repoDir := m.paths.RepoDir()

	report := &types.StatusReport{
		SystemDir: systemDir,
		RepoDir:   repoDir,
	}

	wellKnown := make(map[string]bool)
	for _, name := range m.cfg.WellKnown() {
		wellKnown[name] = true
	}

	// Well-known files first, in config order.
	for _, name := range m.cfg.WellKnown() {
		inSystem := m.exists(filepath.Join(systemDir, name))
		inRepo := m.exists(filepath.Join(repoDir, name))
		if !inSystem && !inRepo {
			continue
		}
		state, err := m.compareFile(name, inSystem, inRepo)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, types.FileStatus{Name: name, State: state, WellKnown: true})
	}

	// Then incidental pattern matches from either tree.
	incidental := make(map[string]bool)
	for _, dir := range []string{systemDir, repoDir} {
		entries, err := m.fs.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || wellKnown[name] || !m.matchesPattern(name) {
				continue
			}
			incidental[name] = true
		}
	}

	names := make([]string, 0, len(incidental))
	for name := range incidental {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		inSystem := m.exists(filepath.Join(systemDir, name))
		inRepo := m.exists(filepath.Join(repoDir, name))
		state, err := m.compareFile(name, inSystem, inRepo)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, types.FileStatus{Name: name, State: state})
	}

	return report, nil
}

// compareFile resolves the state of one filename across both trees.
func (m *Manager) compareFile(name string, inSystem, inRepo bool) (types.FileState, error) {
	switch {
	case !inRepo:
		return types.StateMissingRepo, nil
	case !inSystem:
		return types.StateMissingSystem, nil
	}

	systemData, err := m.fs.ReadFile(filepath.Join(m.paths.SystemDir(), name))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read %s from system tree", name)
	}
	repoData, err := m.fs.ReadFile(filepath.Join(m.paths.RepoDir(), name))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read %s from repository tree", name)
	}

	if bytes.Equal(systemData, repoData) {
		return types.StateInSync, nil
	}
	return types.StateDiffers, nil
}
