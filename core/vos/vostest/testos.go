// Package vostest provides an in-memory VOS for testing builtins.
package vostest

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"syscall"

	"github.com/josephlewis42/smallsh/core/vos"
	"github.com/spf13/afero"
)

// DefaultPID is the process ID reported by a MemOS.
const DefaultPID = 4242

// MemOS is a deterministic VOS backed by an in-memory filesystem.
type MemOS struct {
	*vos.MapEnv
	*vos.VIOAdapter

	// Fs holds the directory tree Chdir checks against.
	Fs  afero.Fs
	PID int

	wd string
}

var _ vos.VOS = (*MemOS)(nil)

// NewMemOS creates an OS rooted at "/" with HOME set to home, which is
// created along with every dir.
func NewMemOS(stdin io.Reader, stdout, stderr io.Writer, home string, dirs ...string) *MemOS {
	if stdin == nil {
		stdin = &bytes.Buffer{}
	}

	memOS := &MemOS{
		MapEnv: vos.NewMapEnvFromEnvList([]string{
			"HOME=" + home,
			"PATH=/usr/bin:/bin",
		}),
		VIOAdapter: vos.NewVIOAdapter(
			io.NopCloser(stdin),
			&vos.NopWriteCloser{Writer: stdout},
			&vos.NopWriteCloser{Writer: stderr},
		),
		Fs:  afero.NewMemMapFs(),
		PID: DefaultPID,
		wd:  "/",
	}

	for _, dir := range append([]string{home}, dirs...) {
		if err := memOS.Fs.MkdirAll(dir, 0755); err != nil {
			panic(fmt.Sprintf("creating %q: %v", dir, err))
		}
	}

	return memOS
}

// Getwd implements vos.VProc.Getwd.
func (m *MemOS) Getwd() (string, error) {
	return m.wd, nil
}

// Chdir implements vos.VProc.Chdir.
func (m *MemOS) Chdir(dir string) error {
	if !path.IsAbs(dir) {
		dir = path.Join(m.wd, dir)
	}
	dir = path.Clean(dir)

	info, err := m.Fs.Stat(dir)
	switch {
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case !info.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}

	m.wd = dir
	return nil
}

// Getpid implements vos.VProc.Getpid.
func (m *MemOS) Getpid() int {
	return m.PID
}
