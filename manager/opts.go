// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"fmt"
	"time"

	iu "github.com/choria-io/swan/internal/util"
	"github.com/choria-io/swan/model"
	"github.com/choria-io/swan/session"
)

// Option is a functional option for configuring the manager
type Option func(*Swan) error

// WithToolCommand sets the external tool command line, the line is split using shell quoting rules
func WithToolCommand(line string) Option {
	return func(s *Swan) error {
		cmd, args, err := iu.SplitCommand(line)
		if err != nil {
			return fmt.Errorf("%w: tool: %w", model.ErrInvalidConfig, err)
		}

		s.tool.Command = cmd
		s.tool.Args = args

		return nil
	}
}

// WithTimeout sets the maximum time any external command may run, 0 disables the timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *Swan) error {
		if timeout < 0 {
			return fmt.Errorf("%w: timeout cannot be negative", model.ErrInvalidConfig)
		}

		s.tool.Timeout = timeout

		return nil
	}
}

// WithEnvironment adds KEY=VALUE pairs to the environment of external commands
func WithEnvironment(env []string) Option {
	return func(s *Swan) error {
		s.tool.Environment = append(s.tool.Environment, env...)
		return nil
	}
}

// WithWorkingDirectory runs external commands in dir rather than the current directory
func WithWorkingDirectory(dir string) Option {
	return func(s *Swan) error {
		if dir != "" && !iu.IsDirectory(dir) {
			return fmt.Errorf("%w: working directory %s does not exist", model.ErrInvalidConfig, dir)
		}

		s.tool.Cwd = dir

		return nil
	}
}

// WithSessionDirectory stores events as files in path
func WithSessionDirectory(path string) Option {
	return func(s *Swan) error {
		log, err := s.Logger("session", "directory", "path", path)
		if err != nil {
			return err
		}

		sess, err := session.NewDirectorySessionStore(path, log)
		if err != nil {
			return err
		}

		s.session = sess

		return nil
	}
}

// WithSessionStore sets a specific session store
func WithSessionStore(store model.SessionStore) Option {
	return func(s *Swan) error {
		s.session = store
		return nil
	}
}

// WithNatsContext publishes events to subject using the named NATS context
func WithNatsContext(natsContext string, subject string) Option {
	return func(s *Swan) error {
		if natsContext == "" {
			return nil
		}

		log, err := s.Logger("publisher", "nats", "context", natsContext)
		if err != nil {
			return err
		}

		pub, err := newNatsPublisher(natsContext, subject, log)
		if err != nil {
			return err
		}

		s.publisher = pub

		return nil
	}
}

// WithEventPublisher sets a specific event publisher
func WithEventPublisher(pub model.EventPublisher) Option {
	return func(s *Swan) error {
		s.publisher = pub
		return nil
	}
}

// WithMetricsFile writes Prometheus metrics in text format to path when the manager is closed
func WithMetricsFile(path string) Option {
	return func(s *Swan) error {
		s.metricsFile = path
		return nil
	}
}
