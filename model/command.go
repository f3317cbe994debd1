// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

// Verb selects the operation to perform
type Verb string

const (
	VerbVersion   Verb = "version"
	VerbInstall   Verb = "install"
	VerbUninstall Verb = "uninstall"
	VerbList      Verb = "list"
	VerbNew       Verb = "new"
	VerbHelp      Verb = "help"
	VerbUnknown   Verb = "unknown"
)

// Command is a parsed invocation, only the fields relevant to Verb are set
type Command struct {
	Verb Verb `json:"verb" yaml:"verb"`
	// Token is the lower-cased verb as given on the command line
	Token   string `json:"token" yaml:"token"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	// Version is empty when the latest version is requested
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
}

// SpawnsProcess indicates if the verb delegates to the external tool
func (c *Command) SpawnsProcess() bool {
	switch c.Verb {
	case VerbInstall, VerbUninstall, VerbList, VerbNew:
		return true
	default:
		return false
	}
}
