// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	"strings"

	"github.com/choria-io/swan/model"
)

const (
	installUsage   = "Usage: swan install <package-name>"
	uninstallUsage = "Usage: swan uninstall <package-name>"
	newUsage       = "Usage: swan new <project-name>"

	versionFlag = "--version"
)

// ParseCommand turns the argument vector into a Command.
//
// The first argument selects the verb without regard to case. Missing arguments produce a
// *model.UsageError, an empty vector produces model.ErrCommandNotSpecified and unrecognized
// verbs produce a Command with VerbUnknown. Arguments beyond those a verb uses are ignored.
func ParseCommand(args []string) (*model.Command, error) {
	if len(args) == 0 {
		return nil, model.ErrCommandNotSpecified
	}

	token := strings.ToLower(args[0])
	cmd := &model.Command{Token: token}

	switch token {
	case string(model.VerbVersion):
		cmd.Verb = model.VerbVersion

	case string(model.VerbHelp):
		cmd.Verb = model.VerbHelp

	case string(model.VerbList):
		cmd.Verb = model.VerbList

	case string(model.VerbInstall):
		cmd.Verb = model.VerbInstall
		if len(args) < 2 {
			return nil, model.NewUsageError(cmd.Verb, installUsage)
		}

		cmd.Package = args[1]
		if len(args) >= 4 && strings.ToLower(args[2]) == versionFlag {
			cmd.Version = args[3]
		}

	case string(model.VerbUninstall):
		cmd.Verb = model.VerbUninstall
		if len(args) < 2 {
			return nil, model.NewUsageError(cmd.Verb, uninstallUsage)
		}

		cmd.Package = args[1]

	case string(model.VerbNew):
		cmd.Verb = model.VerbNew
		if len(args) < 2 {
			return nil, model.NewUsageError(cmd.Verb, newUsage)
		}

		cmd.Project = args[1]

	default:
		cmd.Verb = model.VerbUnknown
	}

	return cmd, nil
}
