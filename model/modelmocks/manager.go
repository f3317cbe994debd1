// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package modelmocks

import (
	"go.uber.org/mock/gomock"

	"github.com/choria-io/swan/model"
)

// NewManager creates a mock manager that hands out runner and a permissive logger for tool
func NewManager(tool model.ToolConfig, runner model.CommandRunner, ctl *gomock.Controller) (*MockManager, *MockLogger) {
	logger := NewMockLogger(ctl)
	mgr := NewMockManager(ctl)

	mgr.EXPECT().Logger(gomock.Any()).AnyTimes().Return(logger, nil)
	mgr.EXPECT().Tool().AnyTimes().Return(tool)
	if runner != nil {
		mgr.EXPECT().NewRunner().AnyTimes().Return(runner, nil)
	}

	logger.EXPECT().With(gomock.Any()).AnyTimes().Return(logger)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	return mgr, logger
}
