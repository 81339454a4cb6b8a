package job

import (
	"io"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func readMessage(t *testing.T, r io.Reader, size int) string {
	t.Helper()

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatal(err)
	}
	return string(buf)
}

func TestToggleForegroundOnly(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	mode := &ModeState{}
	fd := int(w.Fd())

	toggleForegroundOnly(mode, fd)
	assert.True(t, mode.ForegroundOnly())
	assert.Equal(t, "\nEntering foreground-only mode (& is now ignored)\n", readMessage(t, r, 50))

	toggleForegroundOnly(mode, fd)
	assert.False(t, mode.ForegroundOnly())
	assert.Equal(t, "\nExiting foreground-only mode\n", readMessage(t, r, 30))
}

func TestSignalManager(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	mode := &ModeState{}
	manager := NewSignalManager(mode, int(w.Fd()))
	assert.Nil(t, manager.ApplyShellDisposition())
	assert.Nil(t, manager.ApplyShellDisposition(), "idempotent")

	t.Run("SIGTSTP-enters", func(t *testing.T) {
		assert.Nil(t, syscall.Kill(os.Getpid(), syscall.SIGTSTP))
		assert.Equal(t, string(enterForegroundOnlyMsg), readMessage(t, r, len(enterForegroundOnlyMsg)))
		assert.True(t, mode.ForegroundOnly())
	})

	t.Run("SIGINT-ignored", func(t *testing.T) {
		assert.Nil(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
		time.Sleep(50 * time.Millisecond)
		assert.True(t, mode.ForegroundOnly(), "mode unchanged")
	})

	t.Run("SIGTSTP-exits", func(t *testing.T) {
		assert.Nil(t, syscall.Kill(os.Getpid(), syscall.SIGTSTP))
		assert.Equal(t, string(exitForegroundOnlyMsg), readMessage(t, r, len(exitForegroundOnlyMsg)))
		assert.False(t, mode.ForegroundOnly())
	})

	manager.Stop()
	manager.Stop()
	assert.Equal(t, ErrSignalsStopped, manager.ApplyShellDisposition())
}

func TestSignalManager_noMode(t *testing.T) {
	manager := NewSignalManager(nil, 1)
	assert.Equal(t, ErrNoModeState, manager.ApplyShellDisposition())
	manager.Stop()
}

func TestSignalManager_shieldRestoresSubscription(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	mode := &ModeState{}
	manager := NewSignalManager(mode, int(w.Fd()))
	assert.Nil(t, manager.ApplyShellDisposition())
	defer manager.Stop()

	for _, background := range []bool{false, true} {
		called := false
		pid, err := manager.Shield(background, func() (int, error) {
			called = true
			return 42, nil
		})
		assert.Nil(t, err)
		assert.Equal(t, 42, pid)
		assert.True(t, called)
	}

	// SIGTSTP reaches the handler again once the spawn is done.
	assert.Nil(t, syscall.Kill(os.Getpid(), syscall.SIGTSTP))
	assert.Equal(t, string(enterForegroundOnlyMsg), readMessage(t, r, len(enterForegroundOnlyMsg)))
	assert.True(t, mode.ForegroundOnly())

	// SIGINT is still caught rather than left at the default.
	assert.Nil(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	time.Sleep(50 * time.Millisecond)
}

func TestSignalManager_shieldPassesErrors(t *testing.T) {
	var manager *SignalManager
	_, err := manager.Shield(true, func() (int, error) {
		return 0, ErrSpawn
	})
	assert.Equal(t, ErrSpawn, err)
}
