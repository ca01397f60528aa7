package sync

import (
	"os"
	"path/filepath"

	"github.com/K-NANOG/OS/pkg/errors"
)

// copyFile copies a single file, creating the destination's parent
// directory and preserving the source permission bits. Config files are
// small, so whole-file reads are fine here.
func (m *Manager) copyFile(src, dst string) error {
	info, err := m.fs.Stat(src)
	if err != nil {
		return err
	}

	data, err := m.fs.ReadFile(src)
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", filepath.Dir(dst))
	}

	return m.fs.WriteFile(dst, data, info.Mode().Perm())
}

// copyTree recursively copies every file under src into dst. The
// destination directory is created even when src is empty.
func (m *Manager) copyTree(src, dst string) error {
	if err := m.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dst)
	}

	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := m.copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := m.copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// exists reports whether a path exists.
func (m *Manager) exists(path string) bool {
	_, err := m.fs.Stat(path)
	return err == nil
}

// matchesPattern reports whether a filename matches the incidental
// file pattern from the config.
func (m *Manager) matchesPattern(name string) bool {
	ok, err := filepath.Match(m.cfg.Pattern, name)
	return err == nil && ok
}

// isPermission reports whether an error is a permission denial.
func isPermission(err error) bool {
	return os.IsPermission(err)
}
