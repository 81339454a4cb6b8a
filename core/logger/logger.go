package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event names written by the shell. The report keys off these.
const (
	EventJobStarted       = "job started"
	EventForegroundDone   = "foreground job finished"
	EventBackgroundDone   = "background job finished"
	EventAbsorbed         = "absorbed late foreground status"
	EventSpawnFailed      = "spawn failed"
	EventBuiltin          = "builtin"
	EventTerminateGroup   = "terminating process group"
	EventShellStarted     = "shell started"
	EventShellExited      = "shell exited"
	EventSyntaxError      = "syntax error"
	EventForegroundForced = "foreground-only mode, running in foreground"
)

// ParseLevel converts a configured level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// NewJSONLinesLogger creates a logger that writes one JSON object per event
// to w.
func NewJSONLinesLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}
