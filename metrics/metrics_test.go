// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/choria-io/swan/model"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics")
}

var _ = Describe("Metrics", func() {
	Describe("UpdateForEvent", func() {
		It("Should ignore nil events", func() {
			Expect(func() { UpdateForEvent(nil) }).ToNot(Panic())
		})

		It("Should describe the last command and its steps", func() {
			event := model.NewCommandEvent(&model.Command{Verb: model.VerbUninstall, Package: "Foo"})
			event.AddStep("remove", "dotnet", []string{"remove", "package", "Foo"}, &model.ExecResult{ExitCode: 0, Duration: 2 * time.Second}, nil)
			event.AddStep("restore", "dotnet", []string{"restore"}, nil, errors.New("failed"))
			event.Finish(1)

			UpdateForEvent(event)

			Expect(testutil.ToFloat64(CommandExitCode.WithLabelValues("uninstall"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(CommandTimestamp.WithLabelValues("uninstall"))).To(Equal(float64(event.TimeStamp.Unix())))
			Expect(testutil.ToFloat64(StepTime.WithLabelValues("uninstall", "remove"))).To(Equal(2.0))
			Expect(testutil.ToFloat64(StepExitCode.WithLabelValues("uninstall", "remove"))).To(Equal(0.0))
			Expect(testutil.ToFloat64(StepExitCode.WithLabelValues("uninstall", "restore"))).To(Equal(-1.0))
			Expect(testutil.ToFloat64(StepFailed.WithLabelValues("uninstall", "remove"))).To(Equal(0.0))
			Expect(testutil.ToFloat64(StepFailed.WithLabelValues("uninstall", "restore"))).To(Equal(1.0))
		})

		It("Should not accumulate across commands", func() {
			for _, code := range []int{1, 0} {
				event := model.NewCommandEvent(&model.Command{Verb: model.VerbList})
				event.Finish(code)
				UpdateForEvent(event)
			}

			Expect(testutil.ToFloat64(CommandExitCode.WithLabelValues("list"))).To(Equal(0.0))
		})
	})

	Describe("WriteTextfile", func() {
		It("Should write all collectors", func() {
			reg := prometheus.NewRegistry()
			for _, c := range Collectors() {
				Expect(reg.Register(c)).To(Succeed())
			}

			event := model.NewCommandEvent(&model.Command{Verb: model.VerbList})
			event.AddStep("list", "dotnet", []string{"list", "package"}, &model.ExecResult{ExitCode: 0}, nil)
			event.Finish(0)
			UpdateForEvent(event)

			path := filepath.Join(GinkgoT().TempDir(), "swan.prom")
			Expect(WriteTextfile(path, reg)).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(ContainSubstring(`choria_swan_last_command_exit_code{verb="list"} 0`))
			Expect(string(content)).To(ContainSubstring(`choria_swan_last_step_exit_code{step="list",verb="list"} 0`))
			Expect(string(content)).To(ContainSubstring("# TYPE choria_swan_last_command_duration_seconds gauge"))
		})
	})
})
