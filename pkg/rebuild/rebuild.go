// Package rebuild runs the external system-rebuild command invoked
// after a deploy.
package rebuild

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"

	"github.com/K-NANOG/OS/pkg/errors"
	"github.com/K-NANOG/OS/pkg/logging"
)

// Runner executes the rebuild command.
type Runner interface {
	// Run executes argv and blocks until it finishes.
	Run(ctx context.Context, argv []string) error
}

// ExecRunner implements Runner with os/exec, streaming the command's
// output to the console so the user can follow the rebuild.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv and maps a non-zero exit to a structured error.
func (r *ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New(errors.ErrInvalidInput, "rebuild command is empty")
	}

	logger := logging.GetLogger("rebuild")
	logger.Info().Strs("argv", argv).Msg("Running rebuild command")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Wrapf(err, errors.ErrRebuildFailed,
				"rebuild command exited with code %d", exitErr.ExitCode()).
				WithDetail("argv", argv)
		}
		return errors.Wrap(err, errors.ErrRebuildFailed, "failed to run rebuild command").
			WithDetail("argv", argv)
	}

	logger.Info().Msg("Rebuild command finished")
	return nil
}

// FakeRunner implements Runner for testing, recording invocations.
type FakeRunner struct {
	// Calls holds the argv of every Run invocation.
	Calls [][]string
	// Err is returned from Run when set.
	Err error
}

// Run records argv and returns the configured error.
func (r *FakeRunner) Run(_ context.Context, argv []string) error {
	r.Calls = append(r.Calls, argv)
	return r.Err
}
