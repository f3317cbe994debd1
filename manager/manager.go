// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"errors"
	"slices"
	"sync"

	"github.com/choria-io/swan/internal/cmdrunner"
	"github.com/choria-io/swan/metrics"
	"github.com/choria-io/swan/model"
	"github.com/choria-io/swan/tools/dotnet"
)

var _ model.Manager = (*Swan)(nil)

// Swan wires the runner, tool configuration and event recording for a single invocation
type Swan struct {
	log         model.Logger
	tool        model.ToolConfig
	session     model.SessionStore
	publisher   model.EventPublisher
	metricsFile string

	mu sync.Mutex
}

// NewManager creates a new manager with the provided logger
func NewManager(log model.Logger, opts ...Option) (*Swan, error) {
	mgr := &Swan{
		log:  log,
		tool: model.ToolConfig{Command: dotnet.DefaultCommand},
	}

	for _, opt := range opts {
		err := opt(mgr)
		if err != nil {
			return nil, err
		}
	}

	return mgr, nil
}

// Logger creates a logger with additional fields
func (m *Swan) Logger(args ...any) (model.Logger, error) {
	return m.log.With(args...), nil
}

// NewRunner creates a runner for external commands
func (m *Swan) NewRunner() (model.CommandRunner, error) {
	log, err := m.Logger("runner", "exec")
	if err != nil {
		return nil, err
	}

	return cmdrunner.NewCommandRunner(log)
}

// Tool is the configuration of the external package manager
func (m *Swan) Tool() model.ToolConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	tool := m.tool
	tool.Args = slices.Clone(m.tool.Args)
	tool.Environment = slices.Clone(m.tool.Environment)

	return tool
}

// RecordEvent stores the event in the session and publishes it when a publisher is configured
func (m *Swan) RecordEvent(event *model.CommandEvent) error {
	if event == nil {
		return errors.New("no event supplied")
	}

	event.LogStatus(m.log)
	metrics.UpdateForEvent(event)

	var errs []error

	if m.session != nil {
		err := m.session.RecordEvent(event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if m.publisher != nil {
		err := m.publisher.Publish(event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Close flushes published events and writes metrics when configured
func (m *Swan) Close() error {
	var errs []error

	if m.publisher != nil {
		err := m.publisher.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	if m.metricsFile != "" {
		m.log.Debug("Writing metrics", "file", m.metricsFile)
		err := metrics.WriteTextfile(m.metricsFile, nil)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
