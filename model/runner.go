// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"time"
)

// ExtendedExecOptions describes a single subprocess invocation
type ExtendedExecOptions struct {
	Command string
	Args    []string
	// Cwd is the working directory, empty means the current directory
	Cwd string
	// Environment is appended to the environment inherited from the parent
	Environment []string
	// Timeout of 0 waits for the process forever
	Timeout time.Duration
}

// ExecResult is the outcome of a finished subprocess, both output streams are fully drained
type ExecResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Success indicates the process exited 0
func (r *ExecResult) Success() bool {
	return r != nil && r.ExitCode == 0
}

type CommandRunner interface {
	Execute(ctx context.Context, cmd string, args ...string) (*ExecResult, error)
	ExecuteWithOptions(ctx context.Context, opts ExtendedExecOptions) (*ExecResult, error)
}

// ToolConfig describes how to invoke the external package manager
type ToolConfig struct {
	// Command is the executable, looked up in PATH
	Command string
	// Args are placed before every verb specific argument
	Args        []string
	Cwd         string
	Environment []string
	Timeout     time.Duration
}
