package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soyuz43/jsast-go/internal/session"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print the bundled example program.",
	Long:  `Prints the example JavaScript program, handy for trying "jsast example | jsast parse".`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), session.ExampleSource)
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
