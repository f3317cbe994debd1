// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type Manager interface {
	Logger(args ...any) (Logger, error)
	NewRunner() (CommandRunner, error)
	Tool() ToolConfig
	RecordEvent(event *CommandEvent) error
}

// SessionStore keeps a history of the events produced by commands
type SessionStore interface {
	RecordEvent(event *CommandEvent) error
}

// EventPublisher sends events to an external system
type EventPublisher interface {
	Publish(event *CommandEvent) error
	Close() error
}
