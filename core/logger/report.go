package logger

import (
	"encoding/json"
	"fmt"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries int        `json:"log_entries"`
	Levels     StrCounter `json:"levels"`

	Jobs      JobReport     `json:"job_report"`
	Builtins  StrCounter    `json:"builtin_counts"`
	Failures  FailureReport `json:"failure_report"`
	Other     StrCounter    `json:"other_events,omitempty"`
	Absorbed  int           `json:"absorbed_statuses"`
	Shutdowns int           `json:"shutdowns"`
}

// Update folds a single log entry into the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	r.Levels.Increment(le.Level)

	switch le.Message {
	case EventJobStarted:
		r.Jobs.started(le)
	case EventForegroundDone, EventBackgroundDone:
		r.Jobs.finished(le)
	case EventAbsorbed:
		r.Absorbed++
	case EventBuiltin:
		r.Builtins.Increment(le.Name)
	case EventSpawnFailed:
		r.Failures.SpawnFailures.Increment(le.Command())
	case EventSyntaxError:
		r.Failures.SyntaxErrors++
	case EventTerminateGroup:
		r.Shutdowns++
	default:
		r.Other.Increment(le.Message)
	}
}

type JobReport struct {
	Started      int        `json:"started"`
	Background   int        `json:"background"`
	CommandNames StrCounter `json:"command_names"`
	Outcomes     StrCounter `json:"outcomes"`
}

func (r *JobReport) started(le *LogEntry) {
	r.Started++
	if le.Background {
		r.Background++
	}
	r.CommandNames.Increment(le.Command())
}

func (r *JobReport) finished(le *LogEntry) {
	if le.Signaled {
		r.Outcomes.Increment(fmt.Sprintf("terminated by signal %d", le.Code))
	} else {
		r.Outcomes.Increment(fmt.Sprintf("exited with value %d", le.Code))
	}
}

type FailureReport struct {
	SpawnFailures StrCounter `json:"spawn_failures"`
	SyntaxErrors  int        `json:"syntax_errors"`
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}
