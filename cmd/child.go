package cmd

import (
	"fmt"
	"os"

	"github.com/josephlewis42/smallsh/core/job"
	"github.com/spf13/cobra"
)

// childCmd is the far side of a spawn: the shell re-executes itself here to
// set up the job's signals and redirections before becoming the program.
var childCmd = &cobra.Command{
	Use:                "child [-b] [-i FILE] [-o FILE] [-n DEVICE] -- PROGRAM [ARGS...]",
	Short:              "Internal: prepare and exec a job.",
	Hidden:             true,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := job.ParseChildArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "smallsh child: %v\n", err)
			os.Exit(1)
		}

		job.RunChild(spec)
	},
}

func init() {
	rootCmd.AddCommand(childCmd)
}
