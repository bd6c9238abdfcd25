package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/cmd/calc"
	"github.com/alpacahq/bizday/cmd/start"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/log"
)

var (
	// flagPrintVersion set flag to show current bizday version.
	flagPrintVersion bool
	// flagLogLevel is the level name for the log facade.
	flagLogLevel string
)

// Execute builds the command tree and executes commands.
func Execute() error {
	// c is the root command.
	c := &cobra.Command{
		Use:   "bizday",
		Short: "Business day arithmetic",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("log-level") {
				log.SetLevel(log.ParseLevel(flagLogLevel))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print version if specified.
			if flagPrintVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "version: %+v\n", utils.Tag)
				fmt.Fprintf(cmd.OutOrStdout(), "commit hash: %+v\n", utils.GitHash)
				fmt.Fprintf(cmd.OutOrStdout(), "utc build time: %+v\n", utils.BuildStamp)
				return nil
			}
			// Print information regarding usage.
			return cmd.Usage()
		},
	}

	// Adds subcommands and flags.
	c.AddCommand(calc.AddCmd)
	c.AddCommand(calc.SubCmd)
	c.AddCommand(calc.DiffCmd)
	c.AddCommand(start.Cmd)
	c.Flags().BoolVarP(&flagPrintVersion, "version", "v", false, "show the version info and exit")
	c.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "debug, info, warn, error or fatal")

	defer log.Sync()
	return c.Execute()
}
