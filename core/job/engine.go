package job

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/josephlewis42/smallsh/core/shell"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ErrSpawn is returned when a child process could not be created. The shell
// cannot continue without process creation.
var ErrSpawn = errors.New("unable to create process")

// SpawnFunc creates the child process for req. background is the final
// placement after foreground-only mode has been applied.
type SpawnFunc func(req *shell.Request, background bool) (pid int, err error)

// Engine runs non-builtin requests as foreground or background jobs.
type Engine struct {
	Mode     *ModeState
	Status   *StatusTracker
	Registry *Registry
	Out      io.Writer
	Logger   *zap.Logger

	Spawn SpawnFunc
	// Wait defaults to wait4(2).
	Wait WaitFunc
	// Kill defaults to kill(2).
	Kill KillFunc
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Execute spawns the request. Foreground jobs are waited on before it
// returns; background jobs are registered for the reaper. Only a failure to
// create the process is returned as an error.
func (e *Engine) Execute(req *shell.Request) error {
	// The mode is read exactly once; a SIGTSTP arriving after this point
	// applies to the next request.
	background := req.Background && !e.Mode.ForegroundOnly()
	if req.Background && !background {
		e.logger().Debug(logger.EventForegroundForced, zap.Strings("args", req.Args))
	}

	pid, err := e.Spawn(req, background)
	if err != nil {
		e.logger().Error(logger.EventSpawnFailed, zap.Strings("args", req.Args), zap.Error(err))
		if !errors.Is(err, ErrSpawn) {
			err = fmt.Errorf("%w: %v", ErrSpawn, err)
		}
		return err
	}

	job := &Job{
		PID:        pid,
		Args:       req.Args,
		Background: background,
		Started:    time.Now(),
	}

	e.logger().Info(logger.EventJobStarted,
		zap.Int("pid", pid),
		zap.Strings("args", req.Args),
		zap.Stringer("request", req),
		zap.Bool("background", background))

	if background {
		e.Registry.Add(job)
		fmt.Fprintf(e.Out, "Background PID is %d\n", pid)
		return nil
	}

	e.waitForeground(job)
	return nil
}

func (e *Engine) waitForeground(job *Job) {
	wait := e.Wait
	if wait == nil {
		wait = wait4
	}

	var ws unix.WaitStatus
	wpid, err := waitRetry(wait, job.PID, &ws, 0)
	if err != nil || wpid != job.PID {
		// Leave the PID for the next sweep to consume without a report.
		e.Registry.Add(job)
		e.Registry.Absorb(job.PID)
		e.logger().Warn("foreground wait failed, deferring to reaper",
			zap.Int("pid", job.PID),
			zap.Int("wpid", wpid),
			zap.Error(err))
		return
	}

	outcome := outcomeOf(ws)
	e.Status.Set(outcome)
	if outcome.Signaled {
		fmt.Fprintf(e.Out, "Process %d ended, %s\n", job.PID, outcome.CompletionText())
	}

	e.logger().Info(logger.EventForegroundDone,
		zap.Int("pid", job.PID),
		zap.Strings("args", job.Args),
		zap.Bool("signaled", outcome.Signaled),
		zap.Int("code", outcome.Code),
		zap.Duration("runtime", sinceStart(job)))
}

// TerminateGroup sends SIGTERM to every process in the shell's process
// group. The shell ignores SIGTERM first so it can exit on its own terms.
func (e *Engine) TerminateGroup() error {
	kill := e.Kill
	if kill == nil {
		kill = unix.Kill
	}

	signal.Ignore(syscall.SIGTERM)
	e.logger().Info(logger.EventTerminateGroup, zap.Int("outstanding", e.Registry.Len()))
	if err := kill(0, unix.SIGTERM); err != nil {
		return fmt.Errorf("terminating process group: %w", err)
	}
	return nil
}

func sinceStart(job *Job) time.Duration {
	if job.Started.IsZero() {
		return 0
	}
	return time.Since(job.Started)
}
