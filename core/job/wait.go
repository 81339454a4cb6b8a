package job

import (
	"errors"

	"golang.org/x/sys/unix"
)

// WaitFunc waits on a single child, with the semantics of wait4(2).
type WaitFunc func(pid int, status *unix.WaitStatus, options int) (int, error)

// KillFunc sends sig to pid, with the semantics of kill(2).
type KillFunc func(pid int, sig unix.Signal) error

func wait4(pid int, status *unix.WaitStatus, options int) (int, error) {
	return unix.Wait4(pid, status, options, nil)
}

// waitRetry calls wait until it is not interrupted by a signal.
func waitRetry(wait WaitFunc, pid int, status *unix.WaitStatus, options int) (int, error) {
	for {
		wpid, err := wait(pid, status, options)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return wpid, err
	}
}
