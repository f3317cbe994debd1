// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/choria-io/swan/model"
)

// Every invocation of swan is a new process that writes the textfile from scratch, so these
// are gauges describing the most recent command rather than counters.
var (
	NameSpace = "choria"
	Subsystem = "swan"

	// CommandTime is the time taken to handle the last command including all subprocesses
	CommandTime = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_command_duration_seconds"),
		Help: "Time taken to handle the last command",
	}, []string{"verb"})

	// CommandExitCode is the exit code swan returned for the last command
	CommandExitCode = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_command_exit_code"),
		Help: "Exit code of the last command",
	}, []string{"verb"})

	// CommandTimestamp is the unix time the last command started
	CommandTimestamp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_command_timestamp_seconds"),
		Help: "Unix time the last command started",
	}, []string{"verb"})

	// StepTime is the time taken by each external tool invocation of the last command
	StepTime = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_step_duration_seconds"),
		Help: "Time taken by external tool invocations of the last command",
	}, []string{"verb", "step"})

	// StepExitCode is the exit code of each external tool invocation, -1 indicates the process could not be run to completion
	StepExitCode = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_step_exit_code"),
		Help: "Exit code of external tool invocations of the last command",
	}, []string{"verb", "step"})

	// StepFailed is 1 when an external tool invocation failed to start, timed out or was killed
	StepFailed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "last_step_failed"),
		Help: "Indicates if external tool invocations of the last command could not be completed",
	}, []string{"verb", "step"})
)

// Collectors are all the metrics maintained by swan
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{CommandTime, CommandExitCode, CommandTimestamp, StepTime, StepExitCode, StepFailed}
}

// RegisterMetrics registers all collectors with the default registry
func RegisterMetrics() {
	for _, c := range Collectors() {
		prometheus.MustRegister(c)
	}
}

// UpdateForEvent sets all metrics from a completed command event
func UpdateForEvent(event *model.CommandEvent) {
	if event == nil {
		return
	}

	verb := string(event.Verb)

	CommandTime.WithLabelValues(verb).Set(event.Duration.Seconds())
	CommandExitCode.WithLabelValues(verb).Set(float64(event.ExitCode))
	CommandTimestamp.WithLabelValues(verb).Set(float64(event.TimeStamp.Unix()))

	for _, step := range event.Steps {
		StepTime.WithLabelValues(verb, step.Name).Set(step.Duration.Seconds())
		StepExitCode.WithLabelValues(verb, step.Name).Set(float64(step.ExitCode))

		failed := 0.0
		if step.Error != "" {
			failed = 1
		}
		StepFailed.WithLabelValues(verb, step.Name).Set(failed)
	}
}

// WriteTextfile writes the metrics in gatherer to path in the format used by the node exporter textfile collector,
// replacing the previous content. The default gatherer is used when gatherer is nil
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return prometheus.WriteToTextfile(path, gatherer)
}
