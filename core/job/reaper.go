package job

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/smallsh/core/logger"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Completion is a reaped job and how it finished.
type Completion struct {
	Job     *Job
	Outcome Outcome
}

// Reaper collects finished background jobs between prompts.
type Reaper struct {
	Registry *Registry
	Out      io.Writer
	Logger   *zap.Logger
	// Wait defaults to wait4(2).
	Wait WaitFunc
}

// Sweep performs a non-blocking wait on every registered job and reports the
// finished background ones. Jobs marked for absorption are dropped silently.
func (r *Reaper) Sweep() []Completion {
	wait := r.Wait
	if wait == nil {
		wait = wait4
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var completions []Completion
	for _, pid := range r.Registry.PIDs() {
		var ws unix.WaitStatus
		wpid, err := waitRetry(wait, pid, &ws, unix.WNOHANG)
		switch {
		case errors.Is(err, unix.ECHILD):
			r.Registry.Remove(pid)
			log.Debug("child already collected", zap.Int("pid", pid))
			continue
		case err != nil:
			log.Warn("non-blocking wait failed", zap.Int("pid", pid), zap.Error(err))
			continue
		case wpid != pid:
			// Still running.
			continue
		}

		job, _ := r.Registry.Remove(pid)
		outcome := outcomeOf(ws)
		if job.absorb {
			log.Info(logger.EventAbsorbed,
				zap.Int("pid", pid),
				zap.Stringer("outcome", outcome))
			continue
		}

		fmt.Fprintf(r.Out, "Background process %d ended, %s\n", pid, outcome.CompletionText())
		log.Info(logger.EventBackgroundDone,
			zap.Int("pid", pid),
			zap.Strings("args", job.Args),
			zap.Bool("signaled", outcome.Signaled),
			zap.Int("code", outcome.Code),
			zap.Duration("runtime", sinceStart(job)))
		completions = append(completions, Completion{Job: job, Outcome: outcome})
	}

	return completions
}
