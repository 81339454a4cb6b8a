package vos

import (
	"io"
	"os"
)

// VIO holds the standard streams.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

func NewVIOAdapter(stdin io.ReadCloser, stdout, stderr io.WriteCloser) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: stdout,
		IStderr: stderr,
	}
}

// NewHostIO returns the process's own standard streams.
func NewHostIO() *VIOAdapter {
	return NewVIOAdapter(os.Stdin, os.Stdout, os.Stderr)
}

type VIOAdapter struct {
	IStdin  io.ReadCloser
	IStdout io.WriteCloser
	IStderr io.WriteCloser
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() io.ReadCloser {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.WriteCloser {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.WriteCloser {
	return pr.IStderr
}

// NopWriteCloser adapts a writer that must not be closed.
type NopWriteCloser struct {
	io.Writer
}

var _ io.WriteCloser = (*NopWriteCloser)(nil)

func (*NopWriteCloser) Close() error {
	return nil
}
