package vos

import "os"

// HostOS is the running shell process.
type HostOS struct {
	HostEnv
	VIO
}

var _ VOS = (*HostOS)(nil)

// NewHostOS wraps the current process, using vio for the standard streams.
func NewHostOS(vio VIO) *HostOS {
	return &HostOS{VIO: vio}
}

// Getwd implements VProc.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VProc.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Getpid implements VProc.Getpid.
func (*HostOS) Getpid() int {
	return os.Getpid()
}
