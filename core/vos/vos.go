// Package vos is the slice of the operating system the shell's builtins use.
// The host implementation talks to the real process; vostest provides an
// in-memory one for tests.
package vos

// VOS provides a virtual OS interface.
type VOS interface {
	VEnv
	VIO
	VProc
}

// VProc is the process state builtins inspect and change.
type VProc interface {
	// Getwd returns the absolute current working directory.
	Getwd() (string, error)
	// Chdir changes the current working directory.
	Chdir(dir string) error
	// Getpid returns the shell's process ID.
	Getpid() int
}
