package job

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/josephlewis42/smallsh/core/shell"
)

// ReexecSpawner creates children by re-executing the shell binary into its
// child branch, which sets up the disposition and redirections before
// replacing itself with the requested program.
type ReexecSpawner struct {
	// Path is the shell binary.
	Path string
	// Command routes the binary into the child branch, e.g. []string{"child"}.
	Command []string
	// NullDevice receives background output, DefaultNullDevice when empty.
	NullDevice string
	// Env is appended to the shell's environment for the child branch only;
	// the branch removes it again before running the program.
	Env []string
	// Files are the child's descriptors 0, 1 and 2. Defaults to the shell's.
	Files []uintptr
	// Signals is shielded around process creation. May be nil.
	Signals *SignalManager
}

// NewReexecSpawner spawns through the currently running executable.
func NewReexecSpawner(command ...string) (*ReexecSpawner, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating shell executable: %w", err)
	}
	return &ReexecSpawner{Path: path, Command: command}, nil
}

// Spawn implements SpawnFunc.
func (r *ReexecSpawner) Spawn(req *shell.Request, background bool) (int, error) {
	spec := ChildSpec{
		Argv:       req.Args,
		InputFile:  req.InputFile,
		OutputFile: req.OutputFile,
		Background: background,
		NullDevice: r.NullDevice,
	}

	argv := append([]string{r.Path}, r.Command...)
	argv = append(argv, spec.Encode()...)

	files := r.Files
	if files == nil {
		files = []uintptr{0, 1, 2}
	}

	attr := &syscall.ProcAttr{
		Env:   branchEnviron(os.Environ(), r.Env),
		Files: files,
	}
	pid, err := r.Signals.Shield(background, func() (int, error) {
		return syscall.ForkExec(r.Path, argv, attr)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpawn, err)
	}
	return pid, nil
}

// branchEnvKey lists the variables that only the child branch should see.
const branchEnvKey = "SMALLSH_BRANCH_ENV"

// branchEnviron appends extra to environ and records their names so
// programEnviron can strip them.
func branchEnviron(environ, extra []string) []string {
	if len(extra) == 0 {
		return environ
	}

	var keys []string
	for _, kv := range extra {
		keys = append(keys, envName(kv))
	}
	out := append([]string{}, environ...)
	out = append(out, extra...)
	return append(out, branchEnvKey+"="+strings.Join(keys, ","))
}

// programEnviron removes the branch-only variables from environ.
func programEnviron(environ []string) []string {
	strip := map[string]bool{branchEnvKey: true}
	for _, kv := range environ {
		if envName(kv) == branchEnvKey {
			for _, key := range strings.Split(strings.TrimPrefix(kv, branchEnvKey+"="), ",") {
				strip[key] = true
			}
		}
	}

	var out []string
	for _, kv := range environ {
		if !strip[envName(kv)] {
			out = append(out, kv)
		}
	}
	return out
}

func envName(kv string) string {
	name, _, _ := strings.Cut(kv, "=")
	return name
}
