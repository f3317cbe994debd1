// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	"context"

	"github.com/choria-io/swan/model"
	"github.com/choria-io/swan/tools/dotnet"
)

func (d *Dispatcher) install(ctx context.Context, p *dotnet.Provider, cmd *model.Command, event *model.CommandEvent) int {
	d.println("Installing package: " + cmd.Package)
	if cmd.Version != "" {
		d.println("Version: " + cmd.Version)
	} else {
		d.println("No specific version provided, installing the latest version.")
	}

	res, err := p.AddPackage(ctx, cmd.Package, cmd.Version)
	event.AddStep("add", p.Command(), p.Invocation(dotnet.AddArgs(cmd.Package, cmd.Version)), res, err)
	if err != nil || !res.Success() {
		d.println("Failed to install package: " + cmd.Package)
		d.printFailure(p, res, err)
		return 1
	}

	d.println("Package installed successfully. Happy Coding!")

	return 0
}

// uninstall removes the package and then restores the project, a failed restore fails the command but the removal stands
func (d *Dispatcher) uninstall(ctx context.Context, p *dotnet.Provider, cmd *model.Command, event *model.CommandEvent) int {
	d.println("Uninstalling package: " + cmd.Package)

	res, err := p.RemovePackage(ctx, cmd.Package)
	event.AddStep("remove", p.Command(), p.Invocation(dotnet.RemoveArgs(cmd.Package)), res, err)
	if err != nil || !res.Success() {
		d.println("Failed to uninstall package: " + cmd.Package)
		d.printFailure(p, res, err)
		return 1
	}

	d.println("Package uninstalled successfully.")

	res, err = p.Restore(ctx)
	event.AddStep("restore", p.Command(), p.Invocation(dotnet.RestoreArgs()), res, err)
	if err != nil || !res.Success() {
		d.println("Warning: restore failed.")
		d.printFailure(p, res, err)
		return 1
	}

	return 0
}

func (d *Dispatcher) list(ctx context.Context, p *dotnet.Provider, event *model.CommandEvent) int {
	d.println("Listing installed Packages")

	res, err := p.ListPackages(ctx)
	event.AddStep("list", p.Command(), p.Invocation(dotnet.ListArgs()), res, err)
	if err != nil || !res.Success() {
		d.println("Failed to list packages.")
		d.printFailure(p, res, err)
		return 1
	}

	d.println("Installed Packages:")
	d.println(string(res.Stdout))

	return 0
}

func (d *Dispatcher) newProject(ctx context.Context, p *dotnet.Provider, cmd *model.Command, event *model.CommandEvent) int {
	d.println("Creating a new Project: " + cmd.Project)

	res, err := p.NewProject(ctx, cmd.Project)
	event.AddStep("new", p.Command(), p.Invocation(dotnet.NewProjectArgs(cmd.Project)), res, err)
	if err != nil || !res.Success() {
		d.println("Failed to create a project.")
		d.printFailure(p, res, err)
		return 1
	}

	d.println("Project Created Successfully")

	return 0
}

// printFailure shows the captured stderr verbatim, or the error followed by any output captured
// before the process was stopped when it could not be run to completion
func (d *Dispatcher) printFailure(p *dotnet.Provider, res *model.ExecResult, err error) {
	if err != nil {
		if _, found := p.Available(); !found {
			d.log.Warn("Package manager not found in PATH", "command", p.Command())
		}

		d.println("Error: " + err.Error())
		if res != nil && len(res.Stderr) > 0 {
			d.println(string(res.Stderr))
		}

		return
	}

	d.println("Error: " + string(res.Stderr))
}
