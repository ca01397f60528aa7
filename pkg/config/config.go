package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/K-NANOG/OS/pkg/errors"
	"github.com/K-NANOG/OS/pkg/logging"
	"github.com/K-NANOG/OS/pkg/types"
)

// FileName is the per-repository config file, looked up at the sync root.
const FileName = "nixsync.toml"

// Config holds the tunable parts of the sync layout. Every field has a
// working default; a config file only needs to state what it changes.
type Config struct {
	// SystemDir is the live configuration directory.
	SystemDir string `toml:"system_dir"`
	// RepoDir is the repository tree, relative to the sync root.
	RepoDir string `toml:"repo_dir"`
	// BackupsDir is the snapshot parent directory, relative to the sync root.
	BackupsDir string `toml:"backups_dir"`
	// RequiredFiles are the well-known filenames that must copy cleanly.
	RequiredFiles []string `toml:"required_files"`
	// OptionalFiles are well-known filenames that may be absent.
	OptionalFiles []string `toml:"optional_files"`
	// Pattern matches the incidental files picked up by the full variants.
	Pattern string `toml:"pattern"`
	// RebuildCommand is the argv invoked after deploy.
	RebuildCommand []string `toml:"rebuild_command"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		SystemDir:      "/etc/nixos",
		RepoDir:        "nixos",
		BackupsDir:     "backups",
		RequiredFiles:  []string{"configuration.nix"},
		OptionalFiles:  []string{"hardware-configuration.nix"},
		Pattern:        "*.nix",
		RebuildCommand: []string{"nixos-rebuild", "switch"},
	}
}

// Load reads the configuration for the given sync root. Lookup order:
// <root>/nixsync.toml, then $XDG_CONFIG_HOME/nixsync/config.toml, then
// the compiled defaults. A file that exists but does not parse is a
// fatal error; a missing file is not.
func Load(fs types.FS, root string) (*Config, error) {
	logger := logging.GetLogger("config")

	candidates := []string{
		filepath.Join(root, FileName),
		filepath.Join(xdg.ConfigHome, "nixsync", "config.toml"),
	}

	cfg := Default()
	for _, path := range candidates {
		data, err := fs.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
		return cfg, nil
	}

	logger.Debug().Msg("No config file found, using defaults")
	return cfg, nil
}

// WellKnown returns the required and optional filenames in order, used
// by callers that skip already-handled names when pattern matching.
func (c *Config) WellKnown() []string {
	names := make([]string, 0, len(c.RequiredFiles)+len(c.OptionalFiles))
	names = append(names, c.RequiredFiles...)
	names = append(names, c.OptionalFiles...)
	return names
}
