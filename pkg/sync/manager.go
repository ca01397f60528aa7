// Package sync implements the nixsync engine: the operations that move
// configuration files between the system tree, the repository tree and
// timestamped backup snapshots.
//
// The engine keeps no state of its own. Every operation re-derives what
// it needs by scanning the directories involved, and any operation that
// mutates the repository tree snapshots it first.
package sync

import (
	"github.com/rs/zerolog"

	"github.com/K-NANOG/OS/pkg/clock"
	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/logging"
	"github.com/K-NANOG/OS/pkg/paths"
	"github.com/K-NANOG/OS/pkg/rebuild"
	"github.com/K-NANOG/OS/pkg/types"
)

// Manager mediates between the system tree and the repository tree.
type Manager struct {
	fs      types.FS
	paths   *paths.Paths
	cfg     *config.Config
	clock   clock.Clock
	rebuild rebuild.Runner
	dryRun  bool
	logger  zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used for snapshot names.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithDryRun makes every operation report what it would do without
// touching the filesystem or invoking the rebuild command.
func WithDryRun(dryRun bool) Option {
	return func(m *Manager) { m.dryRun = dryRun }
}

// WithRebuildRunner overrides the rebuild command runner.
func WithRebuildRunner(r rebuild.Runner) Option {
	return func(m *Manager) { m.rebuild = r }
}

// New creates a Manager for the given filesystem, paths and config.
func New(fs types.FS, p *paths.Paths, cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		fs:      fs,
		paths:   p,
		cfg:     cfg,
		clock:   &clock.RealClock{},
		rebuild: rebuild.NewExecRunner(),
		logger:  logging.GetLogger("sync"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DryRun reports whether the manager is in dry-run mode.
func (m *Manager) DryRun() bool {
	return m.dryRun
}
