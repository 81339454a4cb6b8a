package job

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/sys/unix"
)

// DefaultNullDevice receives the output of background jobs that have no
// output redirection.
const DefaultNullDevice = "/dev/null"

// childFailureCode is the exit status of a child that could not set itself
// up or replace its image.
const childFailureCode = 1

var ErrNoProgram = errors.New("no program to run")

// ChildSpec is everything the child branch needs to set itself up. It travels
// from the shell to the child on the child's command line.
type ChildSpec struct {
	Argv       []string
	InputFile  string
	OutputFile string
	Background bool
	NullDevice string
}

// Encode renders the spec as command line arguments for ParseChildArgs.
func (c ChildSpec) Encode() []string {
	var out []string
	if c.InputFile != "" {
		out = append(out, "-i", c.InputFile)
	}
	if c.OutputFile != "" {
		out = append(out, "-o", c.OutputFile)
	}
	if c.NullDevice != "" {
		out = append(out, "-n", c.NullDevice)
	}
	if c.Background {
		out = append(out, "-b")
	}
	out = append(out, "--")
	return append(out, c.Argv...)
}

// ParseChildArgs decodes arguments produced by ChildSpec.Encode.
func ParseChildArgs(args []string) (ChildSpec, error) {
	opts := getopt.New()
	input := opts.StringLong("input", 'i', "", "redirect standard input from FILE", "FILE")
	output := opts.StringLong("output", 'o', "", "redirect standard output to FILE", "FILE")
	nullDevice := opts.StringLong("null", 'n', DefaultNullDevice, "discard background output to FILE", "FILE")
	background := opts.BoolLong("background", 'b', "run with the background disposition")

	if err := opts.Getopt(append([]string{"child"}, args...), nil); err != nil {
		return ChildSpec{}, err
	}
	if opts.NArgs() == 0 {
		return ChildSpec{}, ErrNoProgram
	}

	return ChildSpec{
		Argv:       opts.Args(),
		InputFile:  *input,
		OutputFile: *output,
		Background: *background,
		NullDevice: *nullDevice,
	}, nil
}

// childOS is the slice of the process the child branch acts on.
type childOS struct {
	// exec replaces the process image, with the semantics of execve(2).
	exec func(argv0 string, argv []string, envv []string) error
	// foreground and background install the signal dispositions.
	foreground func()
	background func()
	diag       io.Writer
}

// RunChild is the child side of a spawn. It sets the signal disposition and
// redirections, then replaces the process image. It never returns: any
// failure ends the child with a non-zero status.
func RunChild(spec ChildSpec) {
	runChild(spec, childOS{
		exec:       syscall.Exec,
		foreground: ApplyForegroundChildDisposition,
		background: ApplyBackgroundChildDisposition,
		diag:       os.Stderr,
	})
	os.Exit(childFailureCode)
}

// runChild returns only when the image could not be replaced.
func runChild(spec ChildSpec, cos childOS) {
	diag := cos.diag

	// The foreground disposition is the starting point, background
	// overrides it.
	cos.foreground()
	if spec.Background {
		cos.background()
	}

	if spec.InputFile != "" {
		if err := redirect(spec.InputFile, os.O_RDONLY, 0, unix.Stdin); err != nil {
			fmt.Fprintf(diag, "Cannot open %s for input\n", spec.InputFile)
			return
		}
	}

	switch {
	case spec.OutputFile != "":
		if err := redirect(spec.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644, unix.Stdout); err != nil {
			fmt.Fprintf(diag, "Cannot open %s for output\n", spec.OutputFile)
			return
		}
	case spec.Background:
		nullDevice := spec.NullDevice
		if nullDevice == "" {
			nullDevice = DefaultNullDevice
		}
		if err := redirect(nullDevice, os.O_WRONLY, 0, unix.Stdout); err != nil {
			fmt.Fprintf(diag, "Cannot open %s for output\n", nullDevice)
			return
		}
	}

	if len(spec.Argv) == 0 {
		fmt.Fprintln(diag, ErrNoProgram)
		return
	}

	path, err := exec.LookPath(spec.Argv[0])
	if err == nil {
		err = cos.exec(path, spec.Argv, programEnviron(os.Environ()))
	}
	fmt.Fprintf(diag, "%s: no such file or directory\n", spec.Argv[0])
}

// redirect opens path and duplicates it onto the target descriptor.
func redirect(path string, flag int, perm os.FileMode, target int) error {
	fd, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return err
	}
	defer fd.Close()

	return dupOnto(int(fd.Fd()), target)
}
