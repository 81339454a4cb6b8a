package cmd

import (
	"log"
	"os"

	"github.com/josephlewis42/smallsh/commands"
	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/job"
	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/josephlewis42/smallsh/core/vos"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd runs the shell on the current terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive shell on this terminal.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		code, err := runShell(log.New(cmd.ErrOrStderr(), "[smallsh] ", 0))
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func runShell(cliLog *log.Logger) (int, error) {
	cfg, err := loadConfigOrDefault(cliLog)
	if err != nil {
		return 0, err
	}

	appLog, closeLog, err := openEventLog(cfg)
	if err != nil {
		return 0, err
	}
	defer closeLog()

	mode := &job.ModeState{}
	signals := job.NewSignalManager(mode, int(os.Stdout.Fd()))
	if err := signals.ApplyShellDisposition(); err != nil {
		return 0, err
	}
	defer signals.Stop()

	spawner, err := job.NewReexecSpawner(childCmd.Name())
	if err != nil {
		return 0, err
	}
	spawner.NullDevice = cfg.NullDevice
	spawner.Signals = signals

	engine := &job.Engine{
		Mode:     mode,
		Status:   &job.StatusTracker{},
		Registry: job.NewRegistry(),
		Out:      os.Stdout,
		Logger:   appLog,
		Spawn:    spawner.Spawn,
	}

	sh := commands.NewShell(vos.NewHostOS(vos.NewHostIO()), engine)
	sh.Prompt = cfg.Prompt
	sh.Parser.MaxArgs = cfg.MaxArgs
	sh.Parser.MaxLineLength = cfg.MaxLineLength

	return sh.Run(), nil
}

// openEventLog opens app.log in the config directory. Without a config
// directory events are discarded.
func openEventLog(cfg *config.Configuration) (*zap.Logger, func(), error) {
	if !cfg.HasDir() {
		return zap.NewNop(), func() {}, nil
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logFd, err := cfg.OpenAppLog()
	if err != nil {
		return nil, nil, err
	}

	appLog := logger.NewJSONLinesLogger(logFd, level)
	return appLog, func() {
		_ = appLog.Sync()
		_ = logFd.Close()
	}, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
