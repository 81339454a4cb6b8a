package cmd

import (
	"fmt"

	"github.com/josephlewis42/smallsh/commands"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands the shell runs itself.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, builtin := range commands.ListBuiltins() {
			fmt.Fprintf(w, "%s\t%s\n", commands.ColorBoldGreen.Sprint(builtin.Use), builtin.Short)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
