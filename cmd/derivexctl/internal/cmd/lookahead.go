package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coregx/derivex"
)

var lookaheadCmd = &cobra.Command{
	Use:   "lookahead <pattern> <input>...",
	Short: "Report the trailing stop-group match length for each input",
	Long: "lookahead compiles pattern, which must end in a `(?P<stop>...)` group,\n" +
		"and for each input that matches as a whole, prints the byte length of\n" +
		"the stop group's match. Inputs that don't match, or patterns without a\n" +
		"trailing stop group, report -1.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, inputs := args[0], args[1:]

		re, err := derivex.Compile(pattern)
		if err != nil {
			return err
		}
		if !re.HasLookahead() {
			log.WithField("pattern", pattern).Warn("pattern has no trailing stop group")
		}

		for _, input := range inputs {
			n, ok := re.LookaheadLen([]byte(input))
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "-1\t%s\n", input)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", n, input)
		}
		log.WithFields(logrus.Fields{"pattern": pattern, "inputs": len(inputs)}).Debug("lookahead complete")
		return nil
	},
}
