// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/segmentio/ksuid"

	iu "github.com/choria-io/swan/internal/util"
	"github.com/choria-io/swan/model"
)

var _ model.SessionStore = (*DirectorySessionStore)(nil)

const eventFileSuffix = ".event"

// DirectorySessionStore stores command events in a directory of files, one file per event
type DirectorySessionStore struct {
	directory string
	log       model.Logger
	mu        sync.Mutex
}

// NewDirectorySessionStore creates a new directory of files based session store
func NewDirectorySessionStore(directory string, logger model.Logger) (*DirectorySessionStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("session directory path cannot be empty")
	}

	absDir, err := filepath.Abs(filepath.Clean(directory))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	if iu.FileExists(absDir) && !iu.IsDirectory(absDir) {
		return nil, fmt.Errorf("session directory %s is not a directory", absDir)
	}

	logger.Debug("Creating new session store")

	return &DirectorySessionStore{
		log:       logger,
		directory: absDir,
	}, nil
}

// RecordEvent writes the event to <directory>/<event id>.event, creating the directory as needed
func (s *DirectorySessionStore) RecordEvent(event *model.CommandEvent) error {
	if event == nil {
		return fmt.Errorf("no event supplied")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Valid ksuids contain only base62 characters so they are safe as file names
	_, err := ksuid.Parse(event.EventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	err = os.MkdirAll(s.directory, 0755)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return err
	}

	filename := filepath.Join(s.directory, event.EventID+eventFileSuffix)
	s.log.Debug("Recording event", "filename", filename)

	return os.WriteFile(filename, data, 0644)
}
