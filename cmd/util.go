// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/SladkyCitron/slogcolor"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/choria-io/swan/config"
	"github.com/choria-io/swan/manager"
	"github.com/choria-io/swan/metrics"
	"github.com/choria-io/swan/model"
)

// loadConfig loads the configuration file and applies command line overrides
func loadConfig(file string, tool string, timeout string) (*config.Config, error) {
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}

	if tool != "" {
		cfg.Tool = tool
	}

	if timeout != "" {
		err = cfg.SetTimeout(timeout)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func newManager(cfg *config.Config, logger model.Logger) (*manager.Swan, error) {
	opts := []manager.Option{
		manager.WithToolCommand(cfg.Tool),
		manager.WithTimeout(cfg.TimeoutDuration()),
		manager.WithEnvironment(cfg.Environment),
		manager.WithWorkingDirectory(cfg.WorkingDirectory),
	}

	if cfg.HistoryDirectory != "" {
		opts = append(opts, manager.WithSessionDirectory(cfg.HistoryDirectory))
	}

	if cfg.NatsContext != "" {
		opts = append(opts, manager.WithNatsContext(cfg.NatsContext, cfg.NatsSubject))
	}

	if cfg.MetricsFile != "" {
		metrics.RegisterMetrics()
		opts = append(opts, manager.WithMetricsFile(cfg.MetricsFile))
	}

	return manager.NewManager(logger, opts...)
}

func logLevel(cfg *config.Config) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case info:
		return slog.LevelInfo
	}

	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger logs to stderr so that command output on stdout is unaffected
func newLogger(cfg *config.Config) model.Logger {
	level := logLevel(cfg)

	if cfg.LogFormat == "json" {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.JSONFormatter{})

		switch level {
		case slog.LevelDebug:
			log.SetLevel(logrus.DebugLevel)
		case slog.LevelInfo:
			log.SetLevel(logrus.InfoLevel)
		case slog.LevelError:
			log.SetLevel(logrus.ErrorLevel)
		default:
			log.SetLevel(logrus.WarnLevel)
		}

		return manager.NewLogrusLogger(logrus.NewEntry(log))
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		return manager.NewSlogLogger(slog.New(slogcolor.NewHandler(os.Stderr, &slogcolor.Options{Level: level})))
	}

	return manager.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
