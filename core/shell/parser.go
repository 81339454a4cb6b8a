// Package shell turns raw input lines into command requests.
package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
)

const (
	// DefaultMaxArgs is the default upper bound on the argument vector.
	DefaultMaxArgs = 512
	// DefaultMaxLineLength is the default upper bound on an input line.
	DefaultMaxLineLength = 2048

	tokenInput      = "<"
	tokenOutput     = ">"
	tokenBackground = "&"
	commentPrefix   = "#"
	pidVariable     = "$$"
)

var (
	ErrSyntax      = errors.New("syntax error")
	ErrTooManyArgs = errors.New("too many arguments")
	ErrLineTooLong = errors.New("line too long")
)

// ExpandPID replaces every occurrence of "$$" with pid.
func ExpandPID(line string, pid int) string {
	if !strings.Contains(line, pidVariable) {
		return line
	}
	return strings.ReplaceAll(line, pidVariable, strconv.Itoa(pid))
}

// IsComment reports whether the line should be skipped without running
// anything: blank lines and lines starting with '#'.
func IsComment(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix)
}

// FirstToken splits off the first whitespace delimited word of the line
// without tokenizing the rest.
func FirstToken(line string) (name, rest string) {
	line = strings.TrimLeft(line, " \t")
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		return line[:idx], strings.TrimLeft(line[idx:], " \t")
	}
	return line, ""
}

// Parser tokenizes lines into requests.
type Parser struct {
	// PID is substituted for "$$".
	PID int
	// MaxArgs bounds the argument vector, zero means DefaultMaxArgs.
	MaxArgs int
	// MaxLineLength bounds the raw line, zero means DefaultMaxLineLength.
	MaxLineLength int
}

func (p *Parser) maxArgs() int {
	if p.MaxArgs > 0 {
		return p.MaxArgs
	}
	return DefaultMaxArgs
}

func (p *Parser) maxLineLength() int {
	if p.MaxLineLength > 0 {
		return p.MaxLineLength
	}
	return DefaultMaxLineLength
}

// Expand checks the line length and performs "$$" substitution. It runs
// before any other parsing.
func (p *Parser) Expand(line string) (string, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > p.maxLineLength() {
		return "", fmt.Errorf("%w: more than %d characters", ErrLineTooLong, p.maxLineLength())
	}
	return ExpandPID(line, p.PID), nil
}

// Parse tokenizes an already expanded line. A nil request with a nil error
// means there is nothing to run.
func (p *Parser) Parse(line string) (*Request, error) {
	words, err := shlex.Split(line, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(words) == 0 {
		return nil, nil
	}

	req := &Request{}
	for i := 0; i < len(words); i++ {
		switch word := words[i]; {
		case word == tokenInput || word == tokenOutput:
			if i+1 >= len(words) {
				return nil, fmt.Errorf("%w: expected a file after %q", ErrSyntax, word)
			}
			i++
			if word == tokenInput {
				req.InputFile = words[i]
			} else {
				req.OutputFile = words[i]
			}
		case word == tokenBackground && i == len(words)-1:
			req.Background = true
		default:
			req.Args = append(req.Args, word)
		}
	}

	switch {
	case len(req.Args) == 0:
		return nil, fmt.Errorf("%w: missing command", ErrSyntax)
	case len(req.Args) > p.maxArgs():
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyArgs, p.maxArgs())
	}
	req.Command = req.Args[0]
	return req, nil
}
