package shell

import "strings"

// Request is one line of intended execution. It is built fresh for every input
// line and consumed exactly once.
type Request struct {
	// Command is the program name, always equal to Args[0].
	Command string
	// Args holds the full argument vector, program name first.
	Args []string
	// InputFile is read in place of standard input when set.
	InputFile string
	// OutputFile replaces standard output when set.
	OutputFile string
	// Background is advisory: foreground-only mode overrides it at dispatch.
	Background bool
}

// String renders the request back into shell syntax, used for logging.
func (r *Request) String() string {
	parts := append([]string{}, r.Args...)
	if r.InputFile != "" {
		parts = append(parts, "<", r.InputFile)
	}
	if r.OutputFile != "" {
		parts = append(parts, ">", r.OutputFile)
	}
	if r.Background {
		parts = append(parts, "&")
	}
	return strings.Join(parts, " ")
}
