package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/smallsh/core/job"
	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/josephlewis42/smallsh/core/shell"
	"github.com/josephlewis42/smallsh/core/vos"
	"go.uber.org/zap"
)

const DefaultPrompt = ": "

type Shell struct {
	VirtualOS vos.VOS
	Engine    *job.Engine
	Reaper    *job.Reaper
	Parser    *shell.Parser
	Logger    *zap.Logger
	Prompt    string

	// Set to true to quit the shell
	Quit bool
}

// NewShell wires a shell to the engine. The reaper shares the engine's
// registry and output.
func NewShell(virtualOS vos.VOS, engine *job.Engine) *Shell {
	log := engine.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Shell{
		VirtualOS: virtualOS,
		Engine:    engine,
		Reaper: &job.Reaper{
			Registry: engine.Registry,
			Out:      engine.Out,
			Logger:   log,
			Wait:     engine.Wait,
		},
		Parser: &shell.Parser{PID: virtualOS.Getpid()},
		Logger: log,
		Prompt: DefaultPrompt,
	}
}

// Run reads and executes lines until exit, end of input or a failure to
// create a process. It returns the shell's exit code.
func (s *Shell) Run() int {
	s.Logger.Info(logger.EventShellStarted, zap.Int("pid", s.VirtualOS.Getpid()))
	reader := bufio.NewReader(s.VirtualOS.Stdin())

	for !s.Quit {
		s.Reaper.Sweep()
		fmt.Fprint(s.VirtualOS.Stdout(), s.Prompt)

		line, err := reader.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF) && line == "":
			// Input closed, quit.
			s.Quit = true
			continue
		case err != nil && !errors.Is(err, io.EOF):
			fmt.Fprintf(s.VirtualOS.Stderr(), "smallsh: %v\n", err)
			s.Logger.Error("read failed", zap.Error(err))
			return 1
		}

		if err := s.RunLine(line); err != nil {
			fmt.Fprintf(s.VirtualOS.Stderr(), "smallsh: %v\n", err)
			s.Logger.Error(logger.EventShellExited, zap.Int("code", 1), zap.Error(err))
			return 1
		}
	}

	if err := s.Engine.TerminateGroup(); err != nil {
		s.Logger.Warn("terminate process group failed", zap.Error(err))
	}
	s.Logger.Info(logger.EventShellExited, zap.Int("code", 0))
	return 0
}

// RunLine executes a single line of input. Only errors the shell can't
// recover from are returned.
func (s *Shell) RunLine(line string) error {
	expanded, err := s.Parser.Expand(line)
	if err != nil {
		s.reportSyntaxError(err)
		return nil
	}
	if shell.IsComment(expanded) {
		return nil
	}

	name, _ := shell.FirstToken(expanded)
	builtin, isBuiltin := Lookup(name)

	req, err := s.Parser.Parse(expanded)
	switch {
	case err != nil:
		s.reportSyntaxError(err)
		return nil
	case req == nil:
		return nil
	case !isBuiltin:
		// Quoting hides the name from the raw word, e.g. "cd" /tmp.
		builtin, isBuiltin = Lookup(req.Command)
	}

	if isBuiltin {
		code := builtin.Main(s, req.Args)
		s.Logger.Info(logger.EventBuiltin, zap.String("name", req.Command), zap.Int("code", code))
		return nil
	}

	return s.Engine.Execute(req)
}

func (s *Shell) reportSyntaxError(err error) {
	fmt.Fprintf(s.VirtualOS.Stderr(), "smallsh: %v\n", err)
	s.Logger.Info(logger.EventSyntaxError, zap.Error(err))
}
