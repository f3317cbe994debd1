// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/choria-io/swan/model"
)

const killWaitDelay = 2 * time.Second

var _ model.CommandRunner = (*CommandRunner)(nil)

// CommandRunner executes system commands and captures their output
type CommandRunner struct {
	logger model.Logger
}

// NewCommandRunner creates a new CommandRunner instance with the provided logger
func NewCommandRunner(log model.Logger) (*CommandRunner, error) {
	return &CommandRunner{logger: log}, nil
}

// ExecuteWithOptions runs the command and waits for it to exit, stdout and stderr are captured in full.
//
// A non-zero exit is not an error, the exit code is returned in the result. Errors are returned when the
// process could not be started, timed out or was killed by a signal.
func (c *CommandRunner) ExecuteWithOptions(ctx context.Context, opts model.ExtendedExecOptions) (*model.ExecResult, error) {
	if opts.Command == "" {
		return nil, model.ErrCommandRequired
	}

	logOpts := []any{
		"command", shellquote.Join(append([]string{opts.Command}, opts.Args...)...),
	}
	if opts.Cwd != "" {
		logOpts = append(logOpts, "cwd", opts.Cwd)
	}
	if opts.Timeout > 0 {
		logOpts = append(logOpts, "timeout", opts.Timeout)
	}

	c.logger.Debug("Running command", logOpts...)

	toCtx := ctx
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		toCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(toCtx, opts.Command, opts.Args...)
	// grandchildren holding the pipes open must not block us forever once the process was killed
	cmd.WaitDelay = killWaitDelay
	cmd.Env = append(os.Environ(), opts.Environment...)

	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}

	stdout := bytes.NewBuffer([]byte{})
	stderr := bytes.NewBuffer([]byte{})

	// exec copies both pipes concurrently and Run only returns once both are drained
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()

	res := &model.ExecResult{
		ExitCode: -1,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	c.logger.Debug("Command finished", "command", opts.Command, "exitcode", res.ExitCode, "runtime", res.Duration.Truncate(time.Millisecond))

	if opts.Timeout > 0 && errors.Is(toCtx.Err(), context.DeadlineExceeded) {
		return res, fmt.Errorf("%w after %v", model.ErrTimeout, opts.Timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// we specifically dont want to error when exit codes are >0 but we do want to return the exit code instead
		if res.ExitCode > 0 {
			return res, nil
		}

		return res, err
	}

	if err != nil {
		return res, err
	}

	return res, nil
}

// Execute runs a command with the given arguments in the current directory
func (c *CommandRunner) Execute(ctx context.Context, command string, args ...string) (*model.ExecResult, error) {
	return c.ExecuteWithOptions(ctx, model.ExtendedExecOptions{Command: command, Args: args})
}
