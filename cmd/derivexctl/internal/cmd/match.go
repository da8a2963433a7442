package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coregx/derivex"
)

var matchCmd = &cobra.Command{
	Use:   "match <pattern> <input>...",
	Short: "Report whether each input, as a whole, matches pattern",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, inputs := args[0], args[1:]

		log.WithField("pattern", pattern).Debug("compiling")
		re, err := derivex.Compile(pattern)
		if err != nil {
			return err
		}

		matched := 0
		for _, input := range inputs {
			ok := re.MatchString(input)
			if ok {
				matched++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\t%s\n", ok, input)
		}
		log.WithFields(logrus.Fields{"pattern": pattern, "inputs": len(inputs), "matched": matched}).Debug("match complete")
		return nil
	},
}
