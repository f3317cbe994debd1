// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/choria-io/swan/model"
	"github.com/choria-io/swan/model/modelmocks"
)

func TestCmdRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal/CmdRunner")
}

var _ = Describe("CommandRunner", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		runner  *CommandRunner
		ctx     context.Context
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockctl)
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

		var err error
		runner, err = NewCommandRunner(logger)
		Expect(err).ToNot(HaveOccurred())

		ctx = context.Background()
	})

	It("Should require a command", func() {
		res, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{})
		Expect(err).To(MatchError(model.ErrCommandRequired))
		Expect(res).To(BeNil())
	})

	It("Should capture output and exit code without failing on non zero exits", func() {
		res, err := runner.Execute(ctx, "/bin/sh", "-c", "echo out; echo err >&2; exit 3")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.ExitCode).To(Equal(3))
		Expect(res.Success()).To(BeFalse())
		Expect(string(res.Stdout)).To(Equal("out\n"))
		Expect(string(res.Stderr)).To(Equal("err\n"))
	})

	It("Should report success", func() {
		res, err := runner.Execute(ctx, "/bin/sh", "-c", "true")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.ExitCode).To(Equal(0))
		Expect(res.Success()).To(BeTrue())
	})

	It("Should drain large outputs on both streams", func() {
		script := "i=0; while [ $i -lt 4000 ]; do echo 'aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa'; echo 'bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb' >&2; i=$((i+1)); done"
		res, err := runner.Execute(ctx, "/bin/sh", "-c", script)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.ExitCode).To(Equal(0))
		Expect(res.Stdout).To(HaveLen(4000 * 50))
		Expect(res.Stderr).To(HaveLen(4000 * 50))
	})

	It("Should pass extra environment and inherit the parent environment", func() {
		GinkgoT().Setenv("SWAN_PARENT", "parent")

		res, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command:     "/bin/sh",
			Args:        []string{"-c", "echo $SWAN_PARENT $SWAN_CHILD"},
			Environment: []string{"SWAN_CHILD=child"},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(res.Stdout)).To(Equal("parent child\n"))
	})

	It("Should run in the requested directory", func() {
		dir, err := filepath.EvalSymlinks(GinkgoT().TempDir())
		Expect(err).ToNot(HaveOccurred())

		res, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command: "/bin/sh",
			Args:    []string{"-c", "pwd -P"},
			Cwd:     dir,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(string(res.Stdout))).To(Equal(dir))
	})

	It("Should enforce timeouts", func() {
		res, err := runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
			Command: "/bin/sh",
			Args:    []string{"-c", "exec sleep 10"},
			Timeout: 100 * time.Millisecond,
		})
		Expect(err).To(MatchError(model.ErrTimeout))
		Expect(res).ToNot(BeNil())
		Expect(res.Success()).To(BeFalse())
		Expect(res.Duration).To(BeNumerically("<", 5*time.Second))
	})

	It("Should fail for missing executables", func() {
		res, err := runner.Execute(ctx, "swan-does-not-exist-anywhere")
		Expect(err).To(HaveOccurred())
		Expect(res.ExitCode).To(Equal(-1))
	})
})
