// Package commands holds the interactive shell loop and its builtins.
package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
)

var ColorBoldGreen = color.New(color.FgGreen, color.Bold)

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer, flags *getopt.Set) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	flags.PrintOptions(w)
}

// Run parses args and calls the callback with the remaining operands.
//
// Builtin operands are paths, so a failed parse (e.g. "cd -dir") hands the
// raw words to the callback instead of bailing.
func (s *SimpleCommand) Run(w io.Writer, args []string, callback func(operands []string) int) int {
	opts := getopt.New()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(args, nil); err != nil {
		return callback(args[1:])
	}

	if *showHelp {
		s.PrintHelp(w, opts)
		return 0
	}

	return callback(opts.Args())
}
