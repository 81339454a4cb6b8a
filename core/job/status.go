package job

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Outcome is how a process finished: an exit code or a terminating signal.
type Outcome struct {
	// Signaled is set when the process was terminated by a signal.
	Signaled bool
	// Code is the exit code, or the signal number when Signaled is set.
	Code int
}

func (o Outcome) String() string {
	if o.Signaled {
		return fmt.Sprintf("terminated by signal %d", o.Code)
	}
	return fmt.Sprintf("exited with value %d", o.Code)
}

// CompletionText is the outcome as it appears in "Process N ended, ..."
// lines, which word it differently from the status builtin.
func (o Outcome) CompletionText() string {
	if o.Signaled {
		return fmt.Sprintf("terminated with signal %d", o.Code)
	}
	return fmt.Sprintf("exit value %d", o.Code)
}

func outcomeOf(ws unix.WaitStatus) Outcome {
	if ws.Signaled() {
		return Outcome{Signaled: true, Code: int(ws.Signal())}
	}
	return Outcome{Code: ws.ExitStatus()}
}

// StatusTracker remembers the outcome of the last foreground process. It is
// only touched from the read-eval loop.
type StatusTracker struct {
	last Outcome
}

// Set records the outcome of a finished foreground process.
func (s *StatusTracker) Set(o Outcome) {
	s.last = o
}

// Last returns the most recent foreground outcome, the zero Outcome if no
// foreground process has finished yet.
func (s *StatusTracker) Last() Outcome {
	return s.last
}
