package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/K-NANOG/OS/internal/version"
	"github.com/K-NANOG/OS/pkg/config"
	"github.com/K-NANOG/OS/pkg/filesystem"
	"github.com/K-NANOG/OS/pkg/logging"
	"github.com/K-NANOG/OS/pkg/paths"
	"github.com/K-NANOG/OS/pkg/style"
	nixsync "github.com/K-NANOG/OS/pkg/sync"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		rootDir   string
	)

	rootCmd := &cobra.Command{
		Use:     "nixsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			style.Init()
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Sync root directory (default: $NIXSYNC_ROOT, git root, or cwd)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newFullUpdateCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newFullDeployCmd())
	rootCmd.AddCommand(newListBackupsCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}

// newManager builds the sync manager from the root command's flags,
// warning when the sync root fell back to the current directory.
func newManager(cmd *cobra.Command) (*nixsync.Manager, error) {
	rootFlag, _ := cmd.Root().PersistentFlags().GetString("root")
	dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

	root, usedFallback, err := paths.ResolveRoot(rootFlag)
	if err != nil {
		return nil, err
	}
	if usedFallback {
		fmt.Fprintf(os.Stderr, "Warning: not in a git repository and %s not set.\n", paths.EnvSyncRoot)
		fmt.Fprintf(os.Stderr, "Using current directory as sync root: %s\n\n", root)
	}

	fs := filesystem.NewOS()
	cfg, err := config.Load(fs, root)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(root, cfg)
	if err != nil {
		return nil, err
	}

	return nixsync.New(fs, p, cfg, nixsync.WithDryRun(dryRun)), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nixsync version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: MsgBackupShort,
		Long:  MsgBackupLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd)
			if err != nil {
				return err
			}
			name, err := m.Backup()
			if err != nil {
				return err
			}
			if name != "" {
				fmt.Printf("Created backup %s\n", name)
			}
			return nil
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: MsgUpdateShort,
		Long:  MsgUpdateLong,
		Args:  cobra.NoArgs,
		RunE:  runPull(false),
	}
}

func newFullUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "full-update",
		Short: MsgFullUpdateShort,
		Long:  MsgFullUpdateLong,
		Args:  cobra.NoArgs,
		RunE:  runPull(true),
	}
}

func runPull(full bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		result, err := m.Pull(full)
		if err != nil {
			return err
		}
		printPullResult(m, result)
		return nil
	}
}

func printPullResult(m *nixsync.Manager, result *nixsync.PullResult) {
	if result.Backup != "" {
		fmt.Printf("Created backup %s\n", result.Backup)
	}
	for _, name := range result.Copied {
		fmt.Printf("Copied %s\n", name)
	}
	for _, name := range result.Skipped {
		fmt.Printf("Skipped %s\n", name)
	}
	if m.DryRun() {
		fmt.Println("Dry run: nothing was copied.")
	}
}

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: MsgDeployShort,
		Long:  MsgDeployLong,
		Args:  cobra.NoArgs,
		RunE:  runPush(false),
	}
}

func newFullDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "full-deploy",
		Short: MsgFullDeployShort,
		Long:  MsgFullDeployLong,
		Args:  cobra.NoArgs,
		RunE:  runPush(true),
	}
}

func runPush(full bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		result, err := m.Push(cmd.Context(), full)
		if err != nil {
			return err
		}
		for _, name := range result.Copied {
			fmt.Printf("Copied %s\n", name)
		}
		for _, name := range result.Skipped {
			fmt.Printf("Skipped %s\n", name)
		}
		if result.Rebuilt {
			fmt.Println("Rebuild finished.")
		} else if m.DryRun() {
			fmt.Println("Dry run: nothing was copied and no rebuild ran.")
		}
		return nil
	}
}

func newListBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-backups",
		Short: MsgListBackupsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd)
			if err != nil {
				return err
			}
			snapshots, err := m.ListBackups()
			if err != nil {
				return err
			}
			fmt.Print(style.RenderSnapshotList(snapshots))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "restore <name>",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		Example: MsgRestoreExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd)
			if err != nil {
				return err
			}
			backup, err := m.Restore(args[0])
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Printf("Backed up current repository tree as %s\n", backup)
			}
			if m.DryRun() {
				fmt.Printf("Dry run: would restore %s\n", args[0])
			} else {
				fmt.Printf("Restored %s\n", args[0])
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd)
			if err != nil {
				return err
			}
			report, err := m.Status()
			if err != nil {
				return err
			}
			fmt.Print(style.RenderStatusReport(report, quiet))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print files that are out of sync")

	return cmd
}
