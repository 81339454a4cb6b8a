package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/josephlewis42/smallsh/core/job"
	"github.com/josephlewis42/smallsh/core/shell"
	"github.com/josephlewis42/smallsh/core/vos/vostest"
	"golang.org/x/sys/unix"
)

const testHome = "/home/user"

// fakeKernel stands in for process creation. Every program finishes as
// soon as it is spawned with the status listed in programs (exit 0 when
// missing).
type fakeKernel struct {
	programs map[string]unix.WaitStatus
	spawnErr error

	nextPID int
	pending map[int]unix.WaitStatus
	spawned []spawnRecord
	kills   []unix.Signal
}

type spawnRecord struct {
	Args       []string
	InputFile  string
	OutputFile string
	Background bool
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{
		programs: map[string]unix.WaitStatus{
			"false":   1 << 8,
			"exit7":   7 << 8,
			"killed9": unix.WaitStatus(unix.SIGKILL),
		},
		nextPID: 100,
		pending: make(map[int]unix.WaitStatus),
	}
}

func (k *fakeKernel) spawn(req *shell.Request, background bool) (int, error) {
	if k.spawnErr != nil {
		return 0, k.spawnErr
	}
	pid := k.nextPID
	k.nextPID++
	k.pending[pid] = k.programs[req.Command]
	k.spawned = append(k.spawned, spawnRecord{
		Args:       req.Args,
		InputFile:  req.InputFile,
		OutputFile: req.OutputFile,
		Background: background,
	})
	return pid, nil
}

func (k *fakeKernel) wait(pid int, status *unix.WaitStatus, options int) (int, error) {
	ws, ok := k.pending[pid]
	if !ok {
		return -1, unix.ECHILD
	}
	delete(k.pending, pid)
	*status = ws
	return pid, nil
}

func (k *fakeKernel) kill(pid int, sig unix.Signal) error {
	if pid != 0 {
		return errors.New("only the process group is signaled")
	}
	k.kills = append(k.kills, sig)
	return nil
}

// newTestShell builds a shell reading input whose stdout and stderr both go
// to the returned buffer.
func newTestShell(t *testing.T, input string, dirs ...string) (*Shell, *fakeKernel, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	memOS := vostest.NewMemOS(strings.NewReader(input), out, out, testHome, dirs...)
	kernel := newFakeKernel()

	engine := &job.Engine{
		Mode:     &job.ModeState{},
		Status:   &job.StatusTracker{},
		Registry: job.NewRegistry(),
		Out:      out,
		Spawn:    kernel.spawn,
		Wait:     kernel.wait,
		Kill:     kernel.kill,
	}

	return NewShell(memOS, engine), kernel, out
}
