// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/choria-io/swan/model"
)

var _ = Describe("ParseCommand", func() {
	It("Should require a command", func() {
		_, err := ParseCommand([]string{})
		Expect(err).To(MatchError(model.ErrCommandNotSpecified))
	})

	DescribeTable("Should select verbs without regard to case",
		func(args []string, expected *model.Command) {
			cmd, err := ParseCommand(args)
			Expect(err).ToNot(HaveOccurred())
			Expect(cmd).To(Equal(expected))
		},
		Entry("version", []string{"Version"}, &model.Command{Verb: model.VerbVersion, Token: "version"}),
		Entry("help", []string{"HELP", "list"}, &model.Command{Verb: model.VerbHelp, Token: "help"}),
		Entry("list", []string{"list", "extra"}, &model.Command{Verb: model.VerbList, Token: "list"}),
		Entry("install latest", []string{"install", "Foo"}, &model.Command{Verb: model.VerbInstall, Token: "install", Package: "Foo"}),
		Entry("install version", []string{"install", "Foo", "--Version", "1.2.3"}, &model.Command{Verb: model.VerbInstall, Token: "install", Package: "Foo", Version: "1.2.3"}),
		Entry("install dangling flag", []string{"install", "Foo", "--version"}, &model.Command{Verb: model.VerbInstall, Token: "install", Package: "Foo"}),
		Entry("install other flag", []string{"install", "Foo", "--prerelease", "1.2.3"}, &model.Command{Verb: model.VerbInstall, Token: "install", Package: "Foo"}),
		Entry("uninstall", []string{"UNINSTALL", "Foo"}, &model.Command{Verb: model.VerbUninstall, Token: "uninstall", Package: "Foo"}),
		Entry("new", []string{"new", "MyApp"}, &model.Command{Verb: model.VerbNew, Token: "new", Project: "MyApp"}),
		Entry("unknown", []string{"Frobnicate"}, &model.Command{Verb: model.VerbUnknown, Token: "frobnicate"}),
	)

	DescribeTable("Should detect missing arguments",
		func(verb string, expected model.Verb, usage string) {
			_, err := ParseCommand([]string{verb})
			Expect(err).To(MatchError(model.ErrUsage))

			var uerr *model.UsageError
			Expect(err).To(BeAssignableToTypeOf(uerr))
			uerr = err.(*model.UsageError)
			Expect(uerr.Verb).To(Equal(expected))
			Expect(uerr.Usage).To(Equal(usage))
		},
		Entry("install", "install", model.VerbInstall, "Usage: swan install <package-name>"),
		Entry("uninstall", "Uninstall", model.VerbUninstall, "Usage: swan uninstall <package-name>"),
		Entry("new", "NEW", model.VerbNew, "Usage: swan new <project-name>"),
	)

	It("Should preserve the case of parameters", func() {
		cmd, err := ParseCommand([]string{"install", "Newtonsoft.Json", "--version", "13.0.3-Beta1"})
		Expect(err).ToNot(HaveOccurred())
		Expect(cmd.Package).To(Equal("Newtonsoft.Json"))
		Expect(cmd.Version).To(Equal("13.0.3-Beta1"))
		Expect(cmd.SpawnsProcess()).To(BeTrue())
	})

	It("Should know which verbs spawn processes", func() {
		for _, verb := range []model.Verb{model.VerbVersion, model.VerbHelp, model.VerbUnknown} {
			Expect((&model.Command{Verb: verb}).SpawnsProcess()).To(BeFalse())
		}
	})
})
