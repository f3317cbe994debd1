// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
)

var (
	ErrCommandNotSpecified = errors.New("command is not specified")
	ErrUsage               = errors.New("invalid usage")
	ErrCommandRequired     = errors.New("command not specified")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrTimeout             = errors.New("command timed out")
)

// UsageError is returned when a verb is missing a required argument
type UsageError struct {
	Verb  Verb
	Usage string
}

func (e *UsageError) Error() string {
	return e.Usage
}

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// NewUsageError creates a usage error for verb
func NewUsageError(verb Verb, usage string) *UsageError {
	return &UsageError{Verb: verb, Usage: usage}
}
