package job

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalBufferSize bounds how many deliveries can queue while the handler is
// busy. os/signal drops deliveries to a full channel.
const signalBufferSize = 16

var (
	// Fixed messages for the SIGTSTP handler. They are written raw, without
	// going through any buffered or formatting path.
	enterForegroundOnlyMsg = []byte("\nEntering foreground-only mode (& is now ignored)\n")
	exitForegroundOnlyMsg  = []byte("\nExiting foreground-only mode\n")

	ErrNoModeState    = errors.New("signal manager has no mode state")
	ErrSignalsStopped = errors.New("signal manager stopped")
)

// SignalManager installs the shell's SIGINT/SIGTSTP disposition.
//
// The handler goroutine only ever sees the mode cell and a raw file
// descriptor; it must not format, allocate, log, or call into the engine or
// the builtins.
type SignalManager struct {
	mode *ModeState
	fd   int

	mu      sync.Mutex
	sigs    chan os.Signal
	done    chan struct{}
	stopped bool
}

// NewSignalManager creates a manager that toggles mode and reports the
// change on the file descriptor fd.
func NewSignalManager(mode *ModeState, fd int) *SignalManager {
	return &SignalManager{mode: mode, fd: fd}
}

// ApplyShellDisposition subscribes the shell to SIGINT and SIGTSTP. SIGINT is
// discarded, SIGTSTP toggles foreground-only mode. Calling it again is a
// no-op.
func (m *SignalManager) ApplyShellDisposition() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.mode == nil:
		return ErrNoModeState
	case m.stopped:
		return ErrSignalsStopped
	case m.sigs != nil:
		return nil
	}

	m.sigs = make(chan os.Signal, signalBufferSize)
	m.done = make(chan struct{})
	go handleShellSignals(m.sigs, m.done, m.mode, m.fd)

	// Both signals are registered in one call so no later code can observe
	// only half of the disposition.
	signal.Notify(m.sigs, syscall.SIGINT, syscall.SIGTSTP)
	return nil
}

// Stop unsubscribes from the signals and waits for the handler to exit.
func (m *SignalManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}
	m.stopped = true
	if m.sigs == nil {
		return
	}

	signal.Stop(m.sigs)
	close(m.sigs)
	<-m.done
}

// Shield runs spawn with SIGTSTP ignored, and SIGINT too for background
// children. Ignored dispositions survive fork and exec, so the new process is
// protected before it runs any code of its own. The shell's subscription is
// restored afterwards; a delivery during spawn is lost. A nil manager
// restores the default handling instead.
func (m *SignalManager) Shield(background bool, spawn func() (int, error)) (int, error) {
	sigs := []os.Signal{syscall.SIGTSTP}
	if background {
		sigs = append(sigs, syscall.SIGINT)
	}

	if m == nil {
		signal.Ignore(sigs...)
		defer signal.Reset(sigs...)
		return spawn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	signal.Ignore(sigs...)
	defer func() {
		if m.sigs != nil && !m.stopped {
			signal.Notify(m.sigs, sigs...)
		} else {
			signal.Reset(sigs...)
		}
	}()
	return spawn()
}

func handleShellSignals(sigs <-chan os.Signal, done chan<- struct{}, mode *ModeState, fd int) {
	defer close(done)

	for sig := range sigs {
		if sig == syscall.SIGTSTP {
			toggleForegroundOnly(mode, fd)
		}
		// SIGINT: the shell itself is never interrupted.
	}
}

// toggleForegroundOnly is the whole SIGTSTP handler: one flip, one raw write.
func toggleForegroundOnly(mode *ModeState, fd int) {
	msg := exitForegroundOnlyMsg
	if mode.Toggle() {
		msg = enterForegroundOnlyMsg
	}
	_, _ = unix.Write(fd, msg)
}

// ApplyForegroundChildDisposition restores SIGINT to its default action and
// ignores SIGTSTP. Runs in the child before its image is replaced: ignored
// dispositions survive exec while caught ones revert to the default, so SIGINT
// is caught here even if it was inherited as ignored.
func ApplyForegroundChildDisposition() {
	signal.Notify(make(chan os.Signal, 1), syscall.SIGINT)
	signal.Ignore(syscall.SIGTSTP)
}

// ApplyBackgroundChildDisposition ignores both SIGINT and SIGTSTP.
func ApplyBackgroundChildDisposition() {
	signal.Ignore(syscall.SIGINT, syscall.SIGTSTP)
}
