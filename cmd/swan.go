// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/choria-io/fisk"

	"github.com/choria-io/swan/dispatcher"
)

var (
	ctx     context.Context
	debug   bool
	info    bool
	Version = dispatcher.DefaultVersion
)

type swanCommand struct {
	configFile string
	tool       string
	timeout    string
	// args holds the verb followed by its arguments, exactly as given
	args     []string
	exitCode int
}

func newApp(cmd *swanCommand) *fisk.Application {
	app := fisk.New("swan", "Package management front end for the dotnet CLI")
	app.Version(Version)
	app.Author("https://choria.io")
	app.Interspersed(false)

	app.Flag("debug", "Enable debug logging").UnNegatableBoolVar(&debug)
	app.Flag("info", "Enable info logging").UnNegatableBoolVar(&info)
	app.Flag("config", "Configuration file to use").Envar("SWAN_CONFIG").PlaceHolder("FILE").ExistingFileVar(&cmd.configFile)
	app.Flag("tool", "External package manager command line").Envar("SWAN_TOOL").PlaceHolder("COMMAND").StringVar(&cmd.tool)
	app.Flag("timeout", "Maximum time any external command may run").Envar("SWAN_TIMEOUT").PlaceHolder("DURATION").StringVar(&cmd.timeout)

	app.Arg("command", "Command to run followed by its arguments: install, uninstall, list, new, version or help").StringsVar(&cmd.args)

	return app
}

func main() {
	cmd := &swanCommand{}

	app := newApp(cmd)
	app.Action(cmd.runAction)

	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)

	app.MustParseWithUsage(os.Args[1:])
	cancel()

	os.Exit(cmd.exitCode)
}

func (c *swanCommand) runAction(_ *fisk.ParseContext) error {
	cfg, err := loadConfig(c.configFile, c.tool, c.timeout)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	if cfg.Source() != "" {
		log.Debug("Loaded configuration", "file", cfg.Source())
	}

	mgr, err := newManager(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		err := mgr.Close()
		if err != nil {
			log.Warn("Could not finalize command events", "error", err)
		}
	}()

	disp, err := dispatcher.New(mgr, os.Stdout, Version)
	if err != nil {
		return err
	}

	c.exitCode = disp.Dispatch(ctx, c.args)

	return nil
}
