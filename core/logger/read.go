package logger

import (
	"encoding/json"
	"io"
)

// LogEntry is a single decoded event from the application log.
type LogEntry struct {
	Level      string   `json:"level"`
	Message    string   `json:"msg"`
	PID        int      `json:"pid"`
	Args       []string `json:"args"`
	Background bool     `json:"background"`
	Signaled   bool     `json:"signaled"`
	Code       int      `json:"code"`
	Name       string   `json:"name"`
	Error      string   `json:"error"`
}

// Command returns the program name of the entry, if any.
func (le *LogEntry) Command() string {
	if len(le.Args) > 0 {
		return le.Args[0]
	}
	return le.Name
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
