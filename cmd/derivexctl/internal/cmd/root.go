package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "derivexctl",
		Short: "derivexctl compiles a regex pattern and runs it against inputs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(lookaheadCmd)
}

// Execute runs the command tree, returning the error cobra produced (if
// any) after it has already printed it to stderr.
func Execute() error {
	return rootCmd.Execute()
}
