package commands

import (
	"fmt"
	"path"
	"sort"
)

const (
	EnvHome = "HOME"
	EnvPWD  = "PWD"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = map[string]ShellBuiltin{
	"cd":     ShellBuiltinFunc(Cd),
	"exit":   ShellBuiltinFunc(Exit),
	"status": ShellBuiltinFunc(Status),
}

var builtinUsage = map[string]*SimpleCommand{
	"cd": {
		Use:   "cd [DIR]",
		Short: "Change the working directory to DIR, or to HOME when DIR is not given.",
	},
	"exit": {
		Use:   "exit",
		Short: "Terminate all jobs and exit the shell.",
	},
	"status": {
		Use:   "status",
		Short: "Print the exit value or terminating signal of the last foreground job.",
	},
}

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Lookup returns the builtin registered under name.
func Lookup(name string) (ShellBuiltin, bool) {
	builtin, ok := AllBuiltins[name]
	return builtin, ok
}

// BuiltinEntry describes a builtin for listings.
type BuiltinEntry struct {
	Name  string
	Use   string
	Short string
}

// ListBuiltins returns the builtins sorted by name.
func ListBuiltins() []BuiltinEntry {
	var out []BuiltinEntry
	for name := range AllBuiltins {
		usage := builtinUsage[name]
		out = append(out, BuiltinEntry{Name: name, Use: usage.Use, Short: usage.Short})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) int {
	w := s.VirtualOS.Stdout()

	return builtinUsage["cd"].Run(w, args, func(operands []string) int {
		var target, display string
		switch len(operands) {
		case 0:
			target = s.VirtualOS.Getenv(EnvHome)
			if target == "" {
				fmt.Fprintln(w, "cd: HOME not set")
				return 1
			}
			display = target
		case 1:
			display = operands[0]
			target = operands[0]
			if !path.IsAbs(target) {
				if wd, err := s.VirtualOS.Getwd(); err == nil {
					target = wd + "/" + target
				}
			}
		default:
			fmt.Fprintf(w, "%s: too many arguments\n", args[0])
			return 1
		}

		if err := s.VirtualOS.Chdir(target); err != nil {
			wd, _ := s.VirtualOS.Getwd()
			fmt.Fprintf(w, "No such directory: %s\n%s\n", display, wd)
			return 1
		}

		wd, err := s.VirtualOS.Getwd()
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", args[0], err)
			return 1
		}
		s.VirtualOS.Setenv(EnvPWD, wd)
		fmt.Fprintln(w, wd)
		return 0
	})
}

// Exit quits the shell. The loop terminates the process group on the way out.
func Exit(s *Shell, args []string) int {
	w := s.VirtualOS.Stdout()

	return builtinUsage["exit"].Run(w, args, func([]string) int {
		fmt.Fprintln(w, "Goodbye!")
		s.Quit = true
		return 0
	})
}

// Status prints how the last foreground job ended.
func Status(s *Shell, args []string) int {
	w := s.VirtualOS.Stdout()

	return builtinUsage["status"].Run(w, args, func([]string) int {
		fmt.Fprintln(w, s.Engine.Status.Last())
		return 0
	})
}
