// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

const CommandEventProtocol = "io.choria.swan.v1.command.event"

// CommandStep is a single subprocess invocation made while handling a command
type CommandStep struct {
	Name     string        `json:"name" yaml:"name"`
	Command  string        `json:"command" yaml:"command"`
	Args     []string      `json:"args" yaml:"args"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// CommandEvent records the outcome of one swan invocation
type CommandEvent struct {
	Protocol  string         `json:"protocol" yaml:"protocol"`
	EventID   string         `json:"event_id" yaml:"event_id"`
	TimeStamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Verb      Verb           `json:"verb" yaml:"verb"`
	Package   string         `json:"package,omitempty" yaml:"package,omitempty"`
	Version   string         `json:"version,omitempty" yaml:"version,omitempty"`
	Project   string         `json:"project,omitempty" yaml:"project,omitempty"`
	Steps     []*CommandStep `json:"steps" yaml:"steps"`
	ExitCode  int            `json:"exit_code" yaml:"exit_code"`
	Failed    bool           `json:"failed" yaml:"failed"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
}

// NewCommandEvent creates an event for cmd with a fresh ksuid
func NewCommandEvent(cmd *Command) *CommandEvent {
	return &CommandEvent{
		Protocol:  CommandEventProtocol,
		EventID:   ksuid.New().String(),
		TimeStamp: time.Now().UTC(),
		Verb:      cmd.Verb,
		Package:   cmd.Package,
		Version:   cmd.Version,
		Project:   cmd.Project,
		Steps:     []*CommandStep{},
	}
}

// AddStep records a subprocess outcome, res may be nil when the process could not be run
func (e *CommandEvent) AddStep(name string, command string, args []string, res *ExecResult, err error) *CommandStep {
	step := &CommandStep{
		Name:     name,
		Command:  command,
		Args:     args,
		ExitCode: -1,
	}

	if res != nil {
		step.ExitCode = res.ExitCode
		step.Duration = res.Duration
	}

	if err != nil {
		step.Error = err.Error()
	}

	e.Steps = append(e.Steps, step)

	return step
}

// Finish sets the overall exit code and duration
func (e *CommandEvent) Finish(exitCode int) {
	e.ExitCode = exitCode
	e.Failed = exitCode != 0
	e.Duration = time.Since(e.TimeStamp)
}

func (e *CommandEvent) SessionEventID() string { return e.EventID }

func (e *CommandEvent) String() string {
	status := "succeeded"
	if e.Failed {
		status = "failed"
	}

	return fmt.Sprintf("%s %s %s with %d steps in %v", e.TimeStamp.Format(time.RFC3339), e.Verb, status, len(e.Steps), e.Duration.Truncate(time.Millisecond))
}

// LogStatus logs the outcome of the command at a level matching its status
func (e *CommandEvent) LogStatus(log Logger) {
	args := []any{
		"verb", e.Verb,
		"exitcode", e.ExitCode,
		"runtime", e.Duration.Truncate(time.Millisecond),
		"steps", len(e.Steps),
	}

	switch {
	case e.Failed:
		log.Warn(fmt.Sprintf("%s failed", e.Verb), args...)
	default:
		log.Info(fmt.Sprintf("%s completed", e.Verb), args...)
	}
}
