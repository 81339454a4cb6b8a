package job

import (
	"errors"

	"github.com/josephlewis42/smallsh/core/shell"
	"golang.org/x/sys/unix"
)

// fakeProcs stands in for the kernel's process table.
type fakeProcs struct {
	nextPID  int
	finished map[int]unix.WaitStatus
	errs     map[int][]error
	spawned  []spawnCall
	kills    []killCall
}

type spawnCall struct {
	req        *shell.Request
	background bool
}

type killCall struct {
	pid int
	sig unix.Signal
}

func newFakeProcs() *fakeProcs {
	return &fakeProcs{
		nextPID:  100,
		finished: make(map[int]unix.WaitStatus),
		errs:     make(map[int][]error),
	}
}

func (f *fakeProcs) spawn(req *shell.Request, background bool) (int, error) {
	f.spawned = append(f.spawned, spawnCall{req: req, background: background})
	pid := f.nextPID
	f.nextPID++
	return pid, nil
}

func (f *fakeProcs) failSpawn(req *shell.Request, background bool) (int, error) {
	return 0, errors.New("resource temporarily unavailable")
}

// finish marks pid as done with the given status.
func (f *fakeProcs) finish(pid int, ws unix.WaitStatus) {
	f.finished[pid] = ws
}

// failWait queues errors returned by the next waits on pid.
func (f *fakeProcs) failWait(pid int, errs ...error) {
	f.errs[pid] = append(f.errs[pid], errs...)
}

func (f *fakeProcs) wait(pid int, ws *unix.WaitStatus, options int) (int, error) {
	if queued := f.errs[pid]; len(queued) > 0 {
		f.errs[pid] = queued[1:]
		return -1, queued[0]
	}

	status, ok := f.finished[pid]
	switch {
	case ok:
		delete(f.finished, pid)
		*ws = status
		return pid, nil
	case options&unix.WNOHANG != 0:
		return 0, nil
	default:
		return -1, unix.ECHILD
	}
}

func (f *fakeProcs) kill(pid int, sig unix.Signal) error {
	f.kills = append(f.kills, killCall{pid: pid, sig: sig})
	return nil
}
