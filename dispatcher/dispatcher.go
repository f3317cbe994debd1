// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/choria-io/swan/model"
	"github.com/choria-io/swan/tools/dotnet"
)

// DefaultVersion is reported by the version command unless another version is supplied
const DefaultVersion = "0.0.1"

// Dispatcher routes verbs to their handlers and writes all user facing output to a single writer
type Dispatcher struct {
	mgr     model.Manager
	out     io.Writer
	log     model.Logger
	version string
}

// New creates a dispatcher writing to out, an empty version uses DefaultVersion
func New(mgr model.Manager, out io.Writer, version string) (*Dispatcher, error) {
	if mgr == nil {
		return nil, errors.New("manager is required")
	}

	if out == nil {
		return nil, errors.New("output writer is required")
	}

	log, err := mgr.Logger("component", "dispatcher")
	if err != nil {
		return nil, err
	}

	if version == "" {
		version = DefaultVersion
	}

	return &Dispatcher{mgr: mgr, out: out, log: log, version: version}, nil
}

// Dispatch handles a single invocation and returns the process exit code
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) int {
	cmd, err := ParseCommand(args)

	var usage *model.UsageError
	switch {
	case errors.Is(err, model.ErrCommandNotSpecified):
		d.println("swan command is not specified.")
		return 1

	case errors.As(err, &usage):
		d.log.Debug("Invalid usage", "verb", usage.Verb)
		d.println(usage.Usage)
		return 1

	case err != nil:
		d.println(err.Error())
		return 1
	}

	d.log.Debug("Dispatching command", "verb", cmd.Verb)

	if cmd.SpawnsProcess() {
		return d.delegate(ctx, cmd)
	}

	switch cmd.Verb {
	case model.VerbVersion:
		d.printf("swan version %s\n", d.version)
		return 0

	case model.VerbHelp:
		d.help()
		return 0

	default:
		d.println("Unknown command: " + cmd.Token)
		return 1
	}
}

// delegate runs the handler of a verb backed by the external tool and records the outcome, only verbs that spawn processes reach it
func (d *Dispatcher) delegate(ctx context.Context, cmd *model.Command) int {
	runner, err := d.mgr.NewRunner()
	if err != nil {
		d.println("Could not create command runner: " + err.Error())
		return 1
	}

	provider, err := dotnet.NewDotnetProvider(d.log, runner, d.mgr.Tool())
	if err != nil {
		d.println("Could not create package manager: " + err.Error())
		return 1
	}

	event := model.NewCommandEvent(cmd)

	var code int
	switch cmd.Verb {
	case model.VerbInstall:
		code = d.install(ctx, provider, cmd, event)
	case model.VerbUninstall:
		code = d.uninstall(ctx, provider, cmd, event)
	case model.VerbList:
		code = d.list(ctx, provider, event)
	case model.VerbNew:
		code = d.newProject(ctx, provider, cmd, event)
	}

	event.Finish(code)

	err = d.mgr.RecordEvent(event)
	if err != nil {
		d.log.Warn("Could not record command event", "verb", cmd.Verb, "error", err)
	}

	return code
}

func (d *Dispatcher) help() {
	d.println("Available commands:")
	d.println("  version - Show the version of swan.")
	d.println("  install <package-name> [--version x.y.z] - Install a package.")
	d.println("  uninstall <package-name> - Uninstall a package.")
	d.println("  list - List installed packages.")
	d.println("  new <project-name> - Create a new console project.")
	d.println("  help - Show this help message.")
}

func (d *Dispatcher) println(line string) {
	fmt.Fprintln(d.out, line)
}

func (d *Dispatcher) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}
