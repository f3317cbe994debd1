// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dotnet

import (
	"context"
	"fmt"
	"slices"

	iu "github.com/choria-io/swan/internal/util"
	"github.com/choria-io/swan/model"
)

const (
	ProviderName   = "dotnet"
	DefaultCommand = "dotnet"

	// ProjectTemplate is the dotnet new template used for new projects
	ProjectTemplate = "console"
)

// Provider invokes the dotnet CLI with fixed argument templates
type Provider struct {
	log    model.Logger
	runner model.CommandRunner
	tool   model.ToolConfig
}

// NewDotnetProvider creates a provider that runs tool using runner
func NewDotnetProvider(log model.Logger, runner model.CommandRunner, tool model.ToolConfig) (*Provider, error) {
	if runner == nil {
		return nil, fmt.Errorf("no command runner configured")
	}

	if tool.Command == "" {
		tool.Command = DefaultCommand
	}

	return &Provider{log: log.With("provider", ProviderName), runner: runner, tool: tool}, nil
}

// Command is the executable that will be invoked
func (p *Provider) Command() string {
	return p.tool.Command
}

// Available reports if the tool can be found in PATH
func (p *Provider) Available() (string, bool) {
	path, found, _ := iu.ExecutableInPath(p.tool.Command)
	return path, found
}

// AddArgs are the arguments used to add pkg, an empty version selects the latest
func AddArgs(pkg string, version string) []string {
	args := []string{"add", "package", pkg}
	if version != "" {
		args = append(args, "--version", version)
	}

	return args
}

// RemoveArgs are the arguments used to remove pkg
func RemoveArgs(pkg string) []string {
	return []string{"remove", "package", pkg}
}

// RestoreArgs are the arguments used to restore project assets
func RestoreArgs() []string {
	return []string{"restore"}
}

// ListArgs are the arguments used to list package references
func ListArgs() []string {
	return []string{"list", "package"}
}

// NewProjectArgs are the arguments used to create a new project called name
func NewProjectArgs(name string) []string {
	return []string{"new", ProjectTemplate, "-n", name}
}

// AddPackage adds a package reference to the project in the current directory
func (p *Provider) AddPackage(ctx context.Context, pkg string, version string) (*model.ExecResult, error) {
	return p.execute(ctx, AddArgs(pkg, version))
}

// RemovePackage removes a package reference from the project in the current directory
func (p *Provider) RemovePackage(ctx context.Context, pkg string) (*model.ExecResult, error) {
	return p.execute(ctx, RemoveArgs(pkg))
}

// Restore restores the dependencies of the project in the current directory
func (p *Provider) Restore(ctx context.Context) (*model.ExecResult, error) {
	return p.execute(ctx, RestoreArgs())
}

// ListPackages lists the package references of the project in the current directory
func (p *Provider) ListPackages(ctx context.Context) (*model.ExecResult, error) {
	return p.execute(ctx, ListArgs())
}

// NewProject creates a new console project called name
func (p *Provider) NewProject(ctx context.Context, name string) (*model.ExecResult, error) {
	return p.execute(ctx, NewProjectArgs(name))
}

// Invocation is the full argument list passed to the tool for verb arguments args
func (p *Provider) Invocation(args []string) []string {
	return append(slices.Clone(p.tool.Args), args...)
}

func (p *Provider) execute(ctx context.Context, args []string) (*model.ExecResult, error) {
	res, err := p.runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
		Command:     p.tool.Command,
		Args:        p.Invocation(args),
		Cwd:         p.tool.Cwd,
		Environment: p.tool.Environment,
		Timeout:     p.tool.Timeout,
	})
	if err != nil {
		p.log.Debug("Command failed", "command", p.tool.Command, "args", args, "error", err)
		return res, err
	}

	if res == nil {
		return nil, fmt.Errorf("no result received from %s", p.tool.Command)
	}

	p.log.Debug("Command finished", "command", p.tool.Command, "args", args, "exitcode", res.ExitCode)

	return res, nil
}
